package entity

// World is a row of the world table: an id in [1, rows] and a random value in
// the same range.
type World struct {
	ID           int
	RandomNumber int
}
