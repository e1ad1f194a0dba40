// Package units holds the unit families reported by the vehicle and the
// conversions from the car's base units into the configured display units.
//
// The car reports every value in metric base units (°C, km, l, l/100km,
// km/h). The "units" property tells which unit the driver selected for each
// family; FromCarUnit converts a base value into that unit.
package units

import "github.com/kilianp07/carinfo/core/cds"

// Temperature is the reported temperature unit.
type Temperature int

const (
	Celsius Temperature = iota
	Fahrenheit
)

// Distance is the reported distance unit.
type Distance int

const (
	Kilometers Distance = iota
	Miles
)

// Fuel is the reported fuel volume unit.
type Fuel int

const (
	Liters Fuel = iota
	GallonsUK
	GallonsUS
)

// Consumption is the reported average consumption unit.
type Consumption int

const (
	LitersPer100Km Consumption = iota
	MPGUK
	MPGUS
	KmPerLiter
)

// Speed is the reported average speed unit.
type Speed int

const (
	KmPerHour Speed = iota
	MilesPerHour
)

var (
	temperatureCodes = map[int]Temperature{1: Celsius, 2: Fahrenheit}
	distanceCodes    = map[int]Distance{1: Kilometers, 2: Miles}
	fuelCodes        = map[int]Fuel{1: Liters, 2: GallonsUK, 3: GallonsUS}
	consumptionCodes = map[int]Consumption{1: LitersPer100Km, 2: MPGUK, 3: MPGUS, 4: KmPerLiter}
	speedCodes       = map[int]Speed{1: KmPerHour, 2: MilesPerHour}
)

// TemperatureFromCode maps a reported code; unknown codes give Celsius.
func TemperatureFromCode(code int) Temperature { return temperatureCodes[code] }

// DistanceFromCode maps a reported code; unknown codes give Kilometers.
func DistanceFromCode(code int) Distance { return distanceCodes[code] }

// FuelFromCode maps a reported code; unknown codes give Liters.
func FuelFromCode(code int) Fuel { return fuelCodes[code] }

// ConsumptionFromCode maps a reported code; unknown codes give l/100km.
func ConsumptionFromCode(code int) Consumption { return consumptionCodes[code] }

// SpeedFromCode maps a reported code; unknown codes give km/h.
func SpeedFromCode(code int) Speed { return speedCodes[code] }

// VehicleUnits is an immutable snapshot of the unit configuration.
type VehicleUnits struct {
	Consumption Consumption
	Distance    Distance
	Fuel        Fuel
	Temperature Temperature
}

// Default is the configuration assumed when the vehicle reports nothing.
var Default = VehicleUnits{}

var (
	unitsConsumption = cds.Integer(cds.VehicleUnits, "units", "consumption")
	unitsDistance    = cds.Integer(cds.VehicleUnits, "units", "distance")
	unitsFuel        = cds.Integer(cds.VehicleUnits, "units", "fuel")
	unitsTemperature = cds.Integer(cds.VehicleUnits, "units", "temperature")

	averageConsumptionUnit = cds.Integer(cds.DrivingAverageConsumption, "averageConsumption", "unit")
	averageSpeedUnit       = cds.Integer(cds.DrivingAverageSpeed, "averageSpeed", "unit")
)

// FromPayload derives the unit configuration from a "units" payload. It
// never fails: missing or unknown codes fall back to the family default.
func FromPayload(p cds.Payload) VehicleUnits {
	code := func(f cds.Field[int]) int {
		v, _ := f.Get(p)
		return v
	}
	return VehicleUnits{
		Consumption: ConsumptionFromCode(code(unitsConsumption)),
		Distance:    DistanceFromCode(code(unitsDistance)),
		Fuel:        FuelFromCode(code(unitsFuel)),
		Temperature: TemperatureFromCode(code(unitsTemperature)),
	}
}

// AverageConsumptionUnit reads the unit attached to an average consumption
// payload.
func AverageConsumptionUnit(p cds.Payload) Consumption {
	v, _ := averageConsumptionUnit.Get(p)
	return ConsumptionFromCode(v)
}

// AverageSpeedUnit reads the unit attached to an average speed payload.
func AverageSpeedUnit(p cds.Payload) Speed {
	v, _ := averageSpeedUnit.Get(p)
	return SpeedFromCode(v)
}
