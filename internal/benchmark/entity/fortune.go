package entity

// AdditionalFortune is appended to the stored fortunes on every render.
const AdditionalFortune = "Additional fortune added at request time."

type Fortune struct {
	ID      int
	Message string
}
