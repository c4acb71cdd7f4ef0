package store

import (
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
)

var standardFortunes = [...]string{
	`fortune: No such file or directory`,
	`A computer scientist is someone who fixes things that aren't broken.`,
	`After enough decimal places, nobody gives a damn.`,
	`A bad random number generator: 1, 1, 1, 1, 1, 4.33e+67, 1, 1, 1`,
	`A computer program does what you tell it to do, not what you want it to do.`,
	`Emacs is a nice operating system, but I prefer UNIX. — Tom Christaensen`,
	`Any program that runs right is obsolete.`,
	`A list is only as strong as its weakest link. — Donald Knuth`,
	`Feature: A bug with seniority.`,
	`Computers make very fast, very accurate mistakes.`,
	`<script>alert("This should not be displayed in a browser alert box.");</script>`,
	`フレームワークのベンチマーク`,
}

// StandardFortunes returns the twelve benchmark fortunes with ids 1 to 12.
func StandardFortunes() []entity.Fortune {
	fortunes := make([]entity.Fortune, len(standardFortunes))
	for i, msg := range standardFortunes {
		fortunes[i] = entity.Fortune{ID: i + 1, Message: msg}
	}
	return fortunes
}

// RandomWorlds returns rows worlds with ids 1 to rows and random numbers in
// the same range.
func RandomWorlds(rows int, random usecase.Random) []entity.World {
	if random == nil {
		random = usecase.NewPooledRandom()
	}

	worlds := make([]entity.World, max(rows, 0))
	for i := range worlds {
		worlds[i] = entity.World{ID: i + 1, RandomNumber: random.IntN(rows) + 1}
	}
	return worlds
}
