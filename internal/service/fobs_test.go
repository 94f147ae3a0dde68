package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fobfinder/fobfinder-go/internal/model"
)

const ownerID = "11111111-2222-3333-4444-555555555555"

func TestCreateFob(t *testing.T) {
	svc := NewFobService(newMemFobs())

	resp, err := svc.Create(context.Background(), ownerID, fountainReq())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if !strings.HasPrefix(resp.ID, "ftn-") {
		t.Errorf("Create() ID = %q, want ftn- prefix", resp.ID)
	}
	if resp.Type != "fountain" {
		t.Errorf("Create() Type = %q, want %q", resp.Type, "fountain")
	}
	if resp.OwnerID != ownerID {
		t.Errorf("Create() OwnerID = %q, want %q", resp.OwnerID, ownerID)
	}
}

func fountainReq() model.CreateFobRequest {
	return model.CreateFobRequest{
		Type: "fountain",
		Name: "Park fountain",
		Lat:  52.52,
		Lng:  13.405,
		Info: json.RawMessage(`{"bottle_filler":true}`),
	}
}

func TestCreateFobValidation(t *testing.T) {
	svc := NewFobService(newMemFobs())

	tests := []struct {
		name   string
		mutate func(*model.CreateFobRequest)
		want   error
	}{
		{"unknown type", func(r *model.CreateFobRequest) { r.Type = "pond" }, ErrUnknownFobType},
		{"empty type", func(r *model.CreateFobRequest) { r.Type = "" }, ErrUnknownFobType},
		{"empty name", func(r *model.CreateFobRequest) { r.Name = "" }, ErrNameRequired},
		{"bad latitude", func(r *model.CreateFobRequest) { r.Lat = 91 }, ErrInvalidCoords},
		{"bad longitude", func(r *model.CreateFobRequest) { r.Lng = -181 }, ErrInvalidCoords},
		{"wrong info shape", func(r *model.CreateFobRequest) { r.Info = json.RawMessage(`{"gender":"all"}`) }, ErrInvalidFobInfo},
		{"malformed info", func(r *model.CreateFobRequest) { r.Info = json.RawMessage(`{`) }, ErrInvalidFobInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := fountainReq()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), ownerID, req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateBathroomFob(t *testing.T) {
	svc := NewFobService(newMemFobs())

	resp, err := svc.Create(context.Background(), ownerID, model.CreateFobRequest{
		Type: "bathroom",
		Name: "Station bathroom",
		Lat:  48.85,
		Lng:  2.35,
		Info: json.RawMessage(`{"gender":"all","baby_changer":true,"sanitary_products":false}`),
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.ID, "bth-") {
		t.Errorf("Create() ID = %q, want bth- prefix", resp.ID)
	}
}

func TestGetFobUnknownID(t *testing.T) {
	svc := NewFobService(newMemFobs())

	if _, err := svc.Get(context.Background(), "not-an-id"); !errors.Is(err, ErrFobNotFound) {
		t.Errorf("Get() error = %v, want ErrFobNotFound", err)
	}
}

func TestUpdateFobKeepsVariant(t *testing.T) {
	fobs := newMemFobs()
	svc := NewFobService(fobs)

	created, err := svc.Create(context.Background(), ownerID, fountainReq())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	// Info must validate against the existing fountain variant; a
	// bathroom-shaped payload is rejected.
	_, err = svc.Update(context.Background(), created.ID, model.UpdateFobRequest{
		Info: json.RawMessage(`{"gender":"all"}`),
	})
	if !errors.Is(err, ErrInvalidFobInfo) {
		t.Errorf("Update() error = %v, want ErrInvalidFobInfo", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, model.UpdateFobRequest{
		Name: "Renamed fountain",
		Info: json.RawMessage(`{"bottle_filler":false}`),
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Name != "Renamed fountain" {
		t.Errorf("Update() Name = %q", updated.Name)
	}
	if updated.Type != "fountain" {
		t.Errorf("Update() Type = %q, variant must not change", updated.Type)
	}
}

func TestUpdateFobSingleCoordinateKeepsOther(t *testing.T) {
	fobs := newMemFobs()
	svc := NewFobService(fobs)

	created, err := svc.Create(context.Background(), ownerID, fountainReq())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	lat := 53.55
	updated, err := svc.Update(context.Background(), created.ID, model.UpdateFobRequest{Lat: &lat})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Lat != lat {
		t.Errorf("Update() Lat = %v, want %v", updated.Lat, lat)
	}
	if updated.Lng != 13.405 {
		t.Errorf("Update() Lng = %v, want the stored 13.405 untouched", updated.Lng)
	}

	bad := 200.0
	if _, err := svc.Update(context.Background(), created.ID, model.UpdateFobRequest{Lng: &bad}); !errors.Is(err, ErrInvalidCoords) {
		t.Errorf("Update() error = %v, want ErrInvalidCoords", err)
	}
}

func TestDeleteFob(t *testing.T) {
	fobs := newMemFobs()
	svc := NewFobService(fobs)

	created, err := svc.Create(context.Background(), ownerID, fountainReq())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrFobNotFound) {
		t.Errorf("Delete() error = %v, want ErrFobNotFound", err)
	}
}

func TestNearbySortsByDistance(t *testing.T) {
	fobs := newMemFobs()
	svc := NewFobService(fobs)

	near := fountainReq()
	near.Name = "near"
	near.Lat, near.Lng = 52.521, 13.406

	far := fountainReq()
	far.Name = "far"
	far.Lat, far.Lng = 52.55, 13.5

	if _, err := svc.Create(context.Background(), ownerID, far); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), ownerID, near); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	result, err := svc.Nearby(context.Background(), 52.52, 13.405, 50)
	if err != nil {
		t.Fatalf("Nearby() unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Nearby() returned %d fobs, want 2", len(result))
	}
	if result[0].Name != "near" {
		t.Errorf("Nearby() first result = %q, want %q", result[0].Name, "near")
	}
	if result[0].DistanceKm == nil || result[1].DistanceKm == nil {
		t.Fatal("Nearby() missing distances")
	}
	if *result[0].DistanceKm > *result[1].DistanceKm {
		t.Error("Nearby() results not sorted by distance")
	}
}

func TestNearbyRejectsBadQuery(t *testing.T) {
	svc := NewFobService(newMemFobs())

	if _, err := svc.Nearby(context.Background(), 120, 0, 5); !errors.Is(err, ErrInvalidCoords) {
		t.Errorf("Nearby() error = %v, want ErrInvalidCoords", err)
	}
	if _, err := svc.Nearby(context.Background(), 50, 0, 0); !errors.Is(err, ErrInvalidCoords) {
		t.Errorf("Nearby() error = %v, want ErrInvalidCoords", err)
	}
}
