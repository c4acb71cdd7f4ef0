package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
)

// ErrUnknownResource is returned when a template engine has no fortunes template.
var ErrUnknownResource = errors.New("unknown template resource")

// FortunesKey is the render context key holding the sorted fortunes.
const FortunesKey = "fortunes"

// Store is the persistence collaborator of one backend.
//
// FindWorlds and FindCachedWorlds return one world per requested id, in the
// order of ids; duplicated ids yield duplicated worlds.
type Store interface {
	FindAllFortunes(ctx context.Context) ([]entity.Fortune, error)
	FindWorlds(ctx context.Context, ids []int) ([]entity.World, error)
	FindCachedWorlds(ctx context.Context, ids []int) ([]entity.World, error)
	ReplaceWorlds(ctx context.Context, worlds []entity.World) error
}

// TemplateEngine renders a named template resource with the given context.
type TemplateEngine interface {
	Render(resource string, context map[string]any) (string, error)
}

type Dependency struct {
	Settings Settings
	Random   Random
	// Resources maps each template engine to its fortunes template resource.
	Resources map[entity.TemplateEngine]string
}

type Usecase struct {
	settings  Settings
	random    Random
	resources map[entity.TemplateEngine]string
}

func New(dep Dependency) *Usecase {
	random := dep.Random
	if random == nil {
		random = NewPooledRandom()
	}

	return &Usecase{
		settings:  dep.Settings,
		random:    random,
		resources: dep.Resources,
	}
}

// Settings returns the benchmark settings.
func (u *Usecase) Settings() Settings {
	return u.settings
}

// Resource resolves the fortunes template resource of engine.
func (u *Usecase) Resource(engine entity.TemplateEngine) (string, error) {
	resource, ok := u.resources[engine]
	if !ok {
		return "", fmt.Errorf("%w for engine %s", ErrUnknownResource, engine)
	}
	return resource, nil
}

// Fortunes loads every fortune, appends the request-time fortune, sorts them
// by message and renders them.
func (u *Usecase) Fortunes(ctx context.Context, store Store, engine TemplateEngine, resource string) (string, error) {
	stored, err := store.FindAllFortunes(ctx)
	if err != nil {
		return "", pkgerror.Normalize(fmt.Errorf("find fortunes: %w", err))
	}

	fortunes := make([]entity.Fortune, 0, len(stored)+1)
	fortunes = append(fortunes, stored...)
	fortunes = append(fortunes, entity.Fortune{ID: 0, Message: entity.AdditionalFortune})
	SortFortunes(fortunes)

	body, err := engine.Render(resource, map[string]any{FortunesKey: fortunes})
	if err != nil {
		return "", pkgerror.Normalize(fmt.Errorf("render %s: %w", resource, err))
	}

	return body, nil
}

// SortFortunes orders fortunes ascending by message, comparing UTF-8 bytes,
// which is code point order.
func SortFortunes(fortunes []entity.Fortune) {
	slices.SortFunc(fortunes, func(a, b entity.Fortune) int {
		return strings.Compare(a.Message, b.Message)
	})
}

// World fetches one random world.
func (u *Usecase) World(ctx context.Context, store Store) (entity.World, error) {
	worlds, err := store.FindWorlds(ctx, []int{u.randomWorld()})
	if err != nil {
		return entity.World{}, pkgerror.Normalize(fmt.Errorf("find world: %w", err))
	}
	if len(worlds) == 0 {
		return entity.World{}, pkgerror.NewServer(fmt.Errorf("find world: %w", pkgerror.ErrNotFound))
	}

	return worlds[0], nil
}

// Worlds fetches count random worlds.
func (u *Usecase) Worlds(ctx context.Context, store Store, count int) ([]entity.World, error) {
	worlds, err := store.FindWorlds(ctx, u.RandomIDs(count))
	if err != nil {
		return nil, pkgerror.Normalize(fmt.Errorf("find worlds: %w", err))
	}

	return worlds, nil
}

// CachedWorlds fetches count random worlds through the store's cache.
func (u *Usecase) CachedWorlds(ctx context.Context, store Store, count int) ([]entity.World, error) {
	worlds, err := store.FindCachedWorlds(ctx, u.RandomIDs(count))
	if err != nil {
		return nil, pkgerror.Normalize(fmt.Errorf("find cached worlds: %w", err))
	}

	return worlds, nil
}

// UpdateWorlds draws count random ids, gives each a fresh random number and
// replaces them in the store in a single call.
func (u *Usecase) UpdateWorlds(ctx context.Context, store Store, count int) ([]entity.World, error) {
	worlds := make([]entity.World, count)
	for i := range worlds {
		worlds[i] = entity.World{ID: u.randomWorld(), RandomNumber: u.randomWorld()}
	}

	if err := store.ReplaceWorlds(ctx, worlds); err != nil {
		return nil, pkgerror.Normalize(fmt.Errorf("replace worlds: %w", err))
	}

	return worlds, nil
}

// RandomIDs draws count independent world ids; duplicates are allowed.
func (u *Usecase) RandomIDs(count int) []int {
	ids := make([]int, max(count, 0))
	for i := range ids {
		ids[i] = u.randomWorld()
	}
	return ids
}

func (u *Usecase) randomWorld() int {
	return u.random.IntN(u.settings.WorldRows) + 1
}

// SortedByID returns a copy of worlds ordered by id, for stores that lock rows
// in a deterministic order.
func SortedByID(worlds []entity.World) []entity.World {
	sorted := slices.Clone(worlds)
	slices.SortStableFunc(sorted, func(a, b entity.World) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}
