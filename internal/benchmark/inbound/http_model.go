package inbound

import "github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"

type Message struct {
	Message string `json:"message"`
}

type World struct {
	ID           int `json:"id"`
	RandomNumber int `json:"randomNumber"`
}

func toHTTPWorld(w entity.World) World {
	return World{ID: w.ID, RandomNumber: w.RandomNumber}
}
