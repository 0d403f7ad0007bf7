package service

import "context"

// WeatherSource supplies the rain signal consumed by due-date computation.
// Acquiring weather data is outside this module; callers inject whatever
// source they have.
type WeatherSource interface {
	RainExpected(ctx context.Context) (bool, error)
}

// StaticWeather is a WeatherSource with a fixed answer.
type StaticWeather bool

func (w StaticWeather) RainExpected(context.Context) (bool, error) {
	return bool(w), nil
}
