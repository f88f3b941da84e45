package api

// FieldResponse describes the geometry and seed of a field.
type FieldResponse struct {
	Seed     uint64  `json:"seed"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	CellSize float64 `json:"cellSize"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
}

// Gradient is one lattice corner and its unit vector.
type Gradient struct {
	CX int     `json:"cx"`
	CY int     `json:"cy"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type GradientsResponse struct {
	Seed      uint64     `json:"seed"`
	Gradients []Gradient `json:"gradients"`
}

// Vec is a 2D vector in JSON form.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SampleResponse is the breakdown of one point evaluation. Corner arrays are
// ordered top-left, top-right, bottom-left, bottom-right.
type SampleResponse struct {
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	CellX     int        `json:"cellX"`
	CellY     int        `json:"cellY"`
	FX        float64    `json:"fx"`
	FY        float64    `json:"fy"`
	Offsets   [4]Vec     `json:"offsets"`
	Gradients [4]Vec     `json:"gradients"`
	Dots      [4]float64 `json:"dots"`
	Raw       float64    `json:"raw"`
	Value     float64    `json:"value"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Seed   uint64 `json:"seed"`
}
