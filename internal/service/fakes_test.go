package service

import (
	"context"

	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/repository"
)

// In-memory store fakes mirroring the MySQL repositories' contracts,
// including their sentinel errors.

type memUsers struct {
	users map[string]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*model.User{}}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

type memFobs struct {
	fobs map[string]*model.Fob
}

func newMemFobs() *memFobs {
	return &memFobs{fobs: map[string]*model.Fob{}}
}

func (m *memFobs) Create(_ context.Context, f *model.Fob) error {
	cp := *f
	m.fobs[f.ID] = &cp
	return nil
}

func (m *memFobs) GetByID(_ context.Context, id string) (*model.Fob, error) {
	if f, ok := m.fobs[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, repository.ErrFobNotFound
}

func (m *memFobs) Update(_ context.Context, f *model.Fob) error {
	if _, ok := m.fobs[f.ID]; !ok {
		return repository.ErrFobNotFound
	}
	cp := *f
	m.fobs[f.ID] = &cp
	return nil
}

func (m *memFobs) Delete(_ context.Context, id string) error {
	if _, ok := m.fobs[id]; !ok {
		return repository.ErrFobNotFound
	}
	delete(m.fobs, id)
	return nil
}

func (m *memFobs) ListNearby(_ context.Context, lat, lng, radiusKm float64) ([]model.Fob, error) {
	var result []model.Fob
	for _, f := range m.fobs {
		result = append(result, *f)
	}
	return result, nil
}

type memRatings struct {
	ratings map[string]*model.Rating
}

func newMemRatings() *memRatings {
	return &memRatings{ratings: map[string]*model.Rating{}}
}

func (m *memRatings) Create(_ context.Context, rt *model.Rating) error {
	cp := *rt
	m.ratings[rt.ID] = &cp
	return nil
}

func (m *memRatings) GetByID(_ context.Context, id string) (*model.Rating, error) {
	if rt, ok := m.ratings[id]; ok {
		cp := *rt
		return &cp, nil
	}
	return nil, repository.ErrRatingNotFound
}

func (m *memRatings) Update(_ context.Context, rt *model.Rating) error {
	if _, ok := m.ratings[rt.ID]; !ok {
		return repository.ErrRatingNotFound
	}
	cp := *rt
	m.ratings[rt.ID] = &cp
	return nil
}

func (m *memRatings) Delete(_ context.Context, id string) error {
	if _, ok := m.ratings[id]; !ok {
		return repository.ErrRatingNotFound
	}
	delete(m.ratings, id)
	return nil
}

func (m *memRatings) ListByFob(_ context.Context, fobID string) ([]model.Rating, error) {
	var result []model.Rating
	for _, rt := range m.ratings {
		if rt.FobID == fobID {
			result = append(result, *rt)
		}
	}
	return result, nil
}

type memPictures struct {
	pictures map[string]*model.Picture
}

func newMemPictures() *memPictures {
	return &memPictures{pictures: map[string]*model.Picture{}}
}

func (m *memPictures) Create(_ context.Context, p *model.Picture) error {
	cp := *p
	m.pictures[p.ID] = &cp
	return nil
}

func (m *memPictures) GetByID(_ context.Context, id string) (*model.Picture, error) {
	if p, ok := m.pictures[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrPictureNotFound
}

func (m *memPictures) UpdateStatus(_ context.Context, id string, pending bool) error {
	if p, ok := m.pictures[id]; ok {
		p.Pending = pending
		return nil
	}
	return repository.ErrPictureNotFound
}

func (m *memPictures) Delete(_ context.Context, id string) error {
	if _, ok := m.pictures[id]; !ok {
		return repository.ErrPictureNotFound
	}
	delete(m.pictures, id)
	return nil
}

func (m *memPictures) ListByFob(_ context.Context, fobID string) ([]model.Picture, error) {
	var result []model.Picture
	for _, p := range m.pictures {
		if p.FobID == fobID {
			result = append(result, *p)
		}
	}
	return result, nil
}

type fakeSigner struct{}

func (fakeSigner) PresignPut(_ context.Context, key string) (string, error) {
	return "https://bucket.example/" + key + "?sig=put", nil
}

func (fakeSigner) PresignGet(_ context.Context, key string) (string, error) {
	return "https://bucket.example/" + key + "?sig=get", nil
}
