package controller

import (
	"context"
	"errors"

	"carelink/models"
)

// ErrNoLocation is returned by locators that cannot produce a coordinate.
var ErrNoLocation = errors.New("location unavailable")

// Locator supplies the device's current coordinate for distance-based
// search. Acquisition latency is externally determined, so it takes a
// context.
type Locator interface {
	Current(ctx context.Context) (models.GeoPoint, error)
}

// FixedLocator always reports one configured coordinate. Stands in for
// device geolocation on machines without one.
type FixedLocator struct {
	Point models.GeoPoint
}

func (f FixedLocator) Current(ctx context.Context) (models.GeoPoint, error) {
	return f.Point, nil
}

// DeniedLocator always fails, modelling a user who refused the location
// permission.
type DeniedLocator struct{}

func (DeniedLocator) Current(ctx context.Context) (models.GeoPoint, error) {
	return models.GeoPoint{}, ErrNoLocation
}
