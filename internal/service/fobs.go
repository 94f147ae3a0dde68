package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/fobfinder/fobfinder-go/internal/fob"
	"github.com/fobfinder/fobfinder-go/internal/geo"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/repository"
)

var (
	ErrUnknownFobType = errors.New("unknown fob type")
	ErrInvalidFobInfo = errors.New("invalid fob info")
	ErrNameRequired   = errors.New("name is required")
	ErrFobNotFound    = errors.New("fob not found")
	ErrInvalidCoords  = errors.New("invalid coordinates")
)

// FobService handles fob business logic.
type FobService struct {
	fobs FobStore
}

// NewFobService creates a new FobService.
func NewFobService(fobs FobStore) *FobService {
	return &FobService{fobs: fobs}
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// decodeInfo strictly decodes the variant-specific info payload, normalizing
// it for storage. The variant is decided once here; downstream layers read it
// from the ID prefix.
func decodeInfo(v fob.Variant, raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	switch v {
	case fob.Fountain:
		var info model.FountainInfo
		if err := dec.Decode(&info); err != nil {
			return nil, ErrInvalidFobInfo
		}
		return json.Marshal(info)
	case fob.Bathroom:
		var info model.BathroomInfo
		if err := dec.Decode(&info); err != nil {
			return nil, ErrInvalidFobInfo
		}
		return json.Marshal(info)
	default:
		return nil, ErrUnknownFobType
	}
}

// Create validates and stores a new fob owned by the given user.
func (s *FobService) Create(ctx context.Context, ownerID string, req model.CreateFobRequest) (model.FobResponse, error) {
	variant := fob.VariantFromString(req.Type)
	if variant == fob.Unknown {
		return model.FobResponse{}, ErrUnknownFobType
	}
	if req.Name == "" {
		return model.FobResponse{}, ErrNameRequired
	}
	if !validCoords(req.Lat, req.Lng) {
		return model.FobResponse{}, ErrInvalidCoords
	}

	info, err := decodeInfo(variant, req.Info)
	if err != nil {
		return model.FobResponse{}, err
	}

	id, err := fob.MintID(variant)
	if err != nil {
		return model.FobResponse{}, err
	}

	f := &model.Fob{
		ID:      id,
		OwnerID: ownerID,
		Name:    req.Name,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Info:    info,
	}

	if err := s.fobs.Create(ctx, f); err != nil {
		return model.FobResponse{}, err
	}

	return fobToResponse(f, nil), nil
}

// Get retrieves a fob by ID, failing closed on unknown prefixes.
func (s *FobService) Get(ctx context.Context, id string) (model.FobResponse, error) {
	if fob.VariantOf(id) == fob.Unknown {
		return model.FobResponse{}, ErrFobNotFound
	}

	f, err := s.fobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFobNotFound) {
			return model.FobResponse{}, ErrFobNotFound
		}
		return model.FobResponse{}, err
	}

	return fobToResponse(f, nil), nil
}

// Update modifies a fob in place. The variant cannot change: the info payload
// is re-validated against the variant carried by the existing ID.
func (s *FobService) Update(ctx context.Context, id string, req model.UpdateFobRequest) (model.FobResponse, error) {
	variant := fob.VariantOf(id)
	if variant == fob.Unknown {
		return model.FobResponse{}, ErrFobNotFound
	}

	f, err := s.fobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFobNotFound) {
			return model.FobResponse{}, ErrFobNotFound
		}
		return model.FobResponse{}, err
	}

	if req.Name != "" {
		f.Name = req.Name
	}
	if req.Lat != nil {
		f.Lat = *req.Lat
	}
	if req.Lng != nil {
		f.Lng = *req.Lng
	}
	if !validCoords(f.Lat, f.Lng) {
		return model.FobResponse{}, ErrInvalidCoords
	}
	if len(req.Info) > 0 {
		info, err := decodeInfo(variant, req.Info)
		if err != nil {
			return model.FobResponse{}, err
		}
		f.Info = info
	}

	if err := s.fobs.Update(ctx, f); err != nil {
		return model.FobResponse{}, err
	}

	return fobToResponse(f, nil), nil
}

// Delete removes a fob. Ownership is enforced by the pipeline gate before
// this runs; ratings and pictures cascade in storage.
func (s *FobService) Delete(ctx context.Context, id string) error {
	err := s.fobs.Delete(ctx, id)
	if errors.Is(err, repository.ErrFobNotFound) {
		return ErrFobNotFound
	}
	return err
}

// Nearby retrieves fobs within radiusKm of the given point with distances
// attached, nearest first.
func (s *FobService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]model.FobResponse, error) {
	if !validCoords(lat, lng) || radiusKm <= 0 {
		return nil, ErrInvalidCoords
	}

	fobs, err := s.fobs.ListNearby(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	result := make([]model.FobResponse, len(fobs))
	for i := range fobs {
		d := geo.DistanceKm(lat, lng, fobs[i].Lat, fobs[i].Lng)
		result[i] = fobToResponse(&fobs[i], &d)
	}

	sort.Slice(result, func(i, j int) bool {
		return *result[i].DistanceKm < *result[j].DistanceKm
	})

	return result, nil
}

func fobToResponse(f *model.Fob, distanceKm *float64) model.FobResponse {
	return model.FobResponse{
		ID:         f.ID,
		Type:       fob.VariantOf(f.ID).String(),
		OwnerID:    f.OwnerID,
		Name:       f.Name,
		Lat:        f.Lat,
		Lng:        f.Lng,
		Info:       f.Info,
		DistanceKm: distanceKm,
		CreatedAt:  f.CreatedAt,
	}
}
