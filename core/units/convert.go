package units

const (
	milesPerKm      = 0.621371
	usGallonsPerL   = 0.264172
	ukGallonsPerL   = 0.219969
	mpgUKFactor     = 282.481
	mpgUSFactor     = 235.215
	kmPerLFactor    = 100.0
	fahrenheitScale = 9.0 / 5.0
	fahrenheitZero  = 32.0
)

// ToCelsius converts v from t into degrees Celsius.
func (t Temperature) ToCelsius(v float64) float64 {
	if t == Fahrenheit {
		return (v - fahrenheitZero) / fahrenheitScale
	}
	return v
}

// FromCarUnit converts a Celsius value into t.
func (t Temperature) FromCarUnit(v float64) float64 {
	if t == Fahrenheit {
		return v*fahrenheitScale + fahrenheitZero
	}
	return v
}

// Convert converts v from t into to.
func (t Temperature) Convert(v float64, to Temperature) float64 {
	if t == to {
		return v
	}
	return to.FromCarUnit(t.ToCelsius(v))
}

// ToKilometers converts v from d into kilometers.
func (d Distance) ToKilometers(v float64) float64 {
	if d == Miles {
		return v / milesPerKm
	}
	return v
}

// FromCarUnit converts a kilometer value into d.
func (d Distance) FromCarUnit(v float64) float64 {
	if d == Miles {
		return v * milesPerKm
	}
	return v
}

// Convert converts v from d into to.
func (d Distance) Convert(v float64, to Distance) float64 {
	if d == to {
		return v
	}
	return to.FromCarUnit(d.ToKilometers(v))
}

func (f Fuel) perLiter() float64 {
	switch f {
	case GallonsUK:
		return ukGallonsPerL
	case GallonsUS:
		return usGallonsPerL
	}
	return 1
}

// ToLiters converts v from f into liters.
func (f Fuel) ToLiters(v float64) float64 { return v / f.perLiter() }

// FromCarUnit converts a liter value into f.
func (f Fuel) FromCarUnit(v float64) float64 { return v * f.perLiter() }

// Convert converts v from f into to.
func (f Fuel) Convert(v float64, to Fuel) float64 {
	if f == to {
		return v
	}
	return to.FromCarUnit(f.ToLiters(v))
}

// ToKmPerHour converts v from s into km/h.
func (s Speed) ToKmPerHour(v float64) float64 {
	if s == MilesPerHour {
		return v / milesPerKm
	}
	return v
}

// FromCarUnit converts a km/h value into s.
func (s Speed) FromCarUnit(v float64) float64 {
	if s == MilesPerHour {
		return v * milesPerKm
	}
	return v
}

// Convert converts v from s into to.
func (s Speed) Convert(v float64, to Speed) float64 {
	if s == to {
		return v
	}
	return to.FromCarUnit(s.ToKmPerHour(v))
}

func (c Consumption) factor() float64 {
	switch c {
	case MPGUK:
		return mpgUKFactor
	case MPGUS:
		return mpgUSFactor
	case KmPerLiter:
		return kmPerLFactor
	}
	return 0
}

// FromCarUnit converts an l/100km value into c. The efficiency units are
// reciprocal, so a zero consumption stays zero instead of becoming infinite.
func (c Consumption) FromCarUnit(v float64) float64 {
	k := c.factor()
	if k == 0 || v == 0 {
		return v
	}
	return k / v
}

// ToLitersPer100Km converts v from c into l/100km.
func (c Consumption) ToLitersPer100Km(v float64) float64 {
	// the reciprocal conversion is its own inverse
	return c.FromCarUnit(v)
}

// Convert converts v from c into to.
func (c Consumption) Convert(v float64, to Consumption) float64 {
	if c == to {
		return v
	}
	return to.FromCarUnit(c.ToLitersPer100Km(v))
}
