package main

import (
	"image"
)

type Point = image.Point
type Size = image.Point
type Rect = image.Rectangle
