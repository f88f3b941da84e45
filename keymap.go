package main

type KeyHandler func()

type KeyMap map[string]KeyHandler

func CreateKeyMap() KeyMap {
	return KeyMap{}
}

// HandleKey runs the handler bound to key and reports whether there was one.
func (km KeyMap) HandleKey(key string) bool {
	if handler, ok := km[key]; ok {
		handler()
		return true
	}
	return false
}

func (km KeyMap) Bind(key string, handler KeyHandler) {
	km[key] = handler
}
