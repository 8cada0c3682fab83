package ws

var globalHub = NewHub()

// Hub returns the package-level hub shared by every session, mirroring
// the rest of the backend's package-singleton collaborators.
func Hub() *Hub {
	return globalHub
}
