// Package carinfo derives the vehicle metrics from property bus updates.
//
// Every exported stream on Metrics is shared: the underlying property
// subscriptions are opened when the first consumer subscribes and released
// when the last one leaves. Unit-bearing metrics combine their raw value with
// the Units stream, so they re-emit when either the value or the unit
// configuration changes, and stay silent until both are known.
package carinfo

import (
	"math"

	"github.com/kilianp07/carinfo/core/cds"
	"github.com/kilianp07/carinfo/core/decode"
	"github.com/kilianp07/carinfo/core/stream"
	"github.com/kilianp07/carinfo/core/units"
)

// Metrics is the metric graph built over one Source.
type Metrics struct {
	Units                   stream.Stream[units.VehicleUnits]
	UnitsAverageConsumption stream.Stream[units.Consumption]
	UnitsAverageSpeed       stream.Stream[units.Speed]

	EVLevel         stream.Stream[float64]
	FuelLevel       stream.Stream[float64]
	AccBatteryLevel stream.Stream[float64]

	EVRange       stream.Stream[float64]
	EVRangeOrZero stream.Stream[float64]
	TotalRange    stream.Stream[float64]
	FuelRange     stream.Stream[float64]

	EngineTemp    stream.Stream[float64]
	OilTemp       stream.Stream[float64]
	BatteryTemp   stream.Stream[float64]
	TempInterior  stream.Stream[float64]
	TempExterior  stream.Stream[float64]
	TempExchanger stream.Stream[float64]

	DrivingMode      stream.Stream[string]
	DrivingModeSport stream.Stream[bool]
	DrivingGear      stream.Stream[int]
	DrivingGearName  stream.Stream[string]

	SpeedActual    stream.Stream[float64]
	SpeedDisplayed stream.Stream[float64]
	Accelerator    stream.Stream[int]
	EngineRPM      stream.Stream[int]

	BrakeContact    stream.Stream[stream.Option[int]]
	ParkingBrake    stream.Stream[stream.Option[int]]
	ParkingBrakeSet stream.Stream[bool]
	BrakeInfo       stream.Stream[string]

	ClutchPedalPosition stream.Stream[int]
	GearboxType         stream.Stream[int]
	ClutchInfo          stream.Stream[string]

	SteeringWheel stream.Stream[decode.Steering]
	AccLon        stream.Stream[float64]
	AccLat        stream.Stream[float64]

	GPSCountry     stream.Stream[string]
	GPSCity        stream.Stream[string]
	GPSStreet      stream.Stream[string]
	GPSCrossStreet stream.Stream[string]
	GPSHouseNumber stream.Stream[string]
	GPSAltitude    stream.Stream[int]
	GPSLat         stream.Stream[float64]
	GPSLon         stream.Stream[float64]
	GPSHeading     stream.Stream[stream.Option[float64]]
	GPSDirection   stream.Stream[decode.Direction]

	Sunroof                   stream.Stream[decode.WindowState]
	WindowDriverFrontState    stream.Stream[decode.WindowState]
	WindowPassengerFrontState stream.Stream[decode.WindowState]
	WindowDriverRearState     stream.Stream[decode.WindowState]
	WindowPassengerRearState  stream.Stream[decode.WindowState]
}

// New builds the metric graph. Nothing is subscribed until a metric is.
func New(src cds.Source) *Metrics {
	m := &Metrics{}
	unitsOf := stream.Share(stream.Map(src.Cached(cds.VehicleUnits), units.FromPayload))
	m.Units = unitsOf
	m.UnitsAverageConsumption = stream.Share(stream.Map(src.Cached(cds.DrivingAverageConsumption), units.AverageConsumptionUnit))
	m.UnitsAverageSpeed = stream.Share(stream.Map(src.Cached(cds.DrivingAverageSpeed), units.AverageSpeedUnit))

	temperature := func(s stream.Stream[float64]) stream.Stream[float64] {
		return stream.Share(inUnits(s, unitsOf, func(u units.VehicleUnits, v float64) float64 {
			return u.Temperature.FromCarUnit(v)
		}))
	}
	distance := func(s stream.Stream[float64]) stream.Stream[float64] {
		return stream.Share(inUnits(s, unitsOf, func(u units.VehicleUnits, v float64) float64 {
			return u.Distance.FromCarUnit(v)
		}))
	}
	fuel := func(s stream.Stream[float64]) stream.Stream[float64] {
		return stream.Share(inUnits(s, unitsOf, func(u units.VehicleUnits, v float64) float64 {
			return u.Fuel.FromCarUnit(v)
		}))
	}

	// levels
	m.EVLevel = stream.Share(cached(src, fieldEVLevel, cds.Below[float64](SentinelPercent)))
	m.FuelLevel = fuel(cached(src, fieldFuelTankLevel, cds.Positive[float64]))
	m.AccBatteryLevel = stream.Share(cached(src, fieldAccBatteryLevel, cds.Below[float64](SentinelPercent)))

	// range
	m.EVRange = stream.Share(cached(src, fieldEVRange, cds.Below[float64](SentinelEVRange)))
	// Vehicles without an electric drive never report an EV range. Assume
	// zero until one is reported so the fuel range is not blocked forever.
	m.EVRangeOrZero = stream.Share(stream.StartWith[float64](0, m.EVRange))
	m.TotalRange = distance(cached(src, fieldFuelRange, cds.Any[float64]))
	m.FuelRange = stream.Share(stream.CombineLatest2(m.TotalRange, m.EVRangeOrZero, FuelRange))

	// temperatures
	m.EngineTemp = temperature(cached(src, fieldEngineTemp, cds.Below[float64](SentinelTemperature)))
	m.OilTemp = temperature(cached(src, fieldOilTemp, cds.Below[float64](SentinelTemperature)))
	m.BatteryTemp = temperature(live(src, fieldBatteryTemp, cds.Below[float64](SentinelTemperature)))
	m.TempInterior = temperature(live(src, fieldTempInterior, cds.Any[float64]))
	m.TempExterior = temperature(live(src, fieldTempExterior, cds.Any[float64]))
	m.TempExchanger = temperature(live(src, fieldTempExchanger, cds.Any[float64]))

	// driving
	mode := cds.Optional(src.Live(cds.DrivingMode), fieldDrivingMode)
	m.DrivingMode = stream.Share(stream.Map(mode, decode.DrivingModeLabel))
	m.DrivingModeSport = stream.Share(stream.Map(mode, decode.SportMode))
	m.DrivingGear = stream.Share(live(src, fieldGear, cds.Positive[int]))
	m.DrivingGearName = stream.Share(stream.CombineLatest2(m.DrivingGear, m.DrivingModeSport, decode.GearLabel))

	m.SpeedActual = distance(live(src, fieldSpeedActual, cds.Any[float64]))
	m.SpeedDisplayed = distance(live(src, fieldSpeedDisplay, cds.Any[float64]))
	m.Accelerator = stream.Share(live(src, fieldAccelerator, cds.Any[int]))
	m.EngineRPM = stream.Share(cached(src, fieldEngineRPM, cds.Any[int]))

	m.BrakeContact = stream.Share(cds.Optional(src.Live(cds.DrivingBrakeContact), fieldBrakeContact))
	m.ParkingBrake = stream.Share(cds.Optional(src.Cached(cds.DrivingParkingBrake), fieldParkingBrake))
	m.ParkingBrakeSet = stream.Share(stream.Map(m.ParkingBrake, decode.ParkingBrakeSet))
	m.BrakeInfo = stream.Share(stream.CombineLatest2(m.BrakeContact, m.ParkingBrakeSet, decode.BrakeLabel))

	m.ClutchPedalPosition = stream.Share(live(src, fieldClutchPedal, cds.Any[int]))
	m.GearboxType = stream.Share(live(src, fieldGearboxType, cds.Any[int]))
	m.ClutchInfo = stream.Share(stream.CombineLatest2(m.ClutchPedalPosition, m.GearboxType, decode.ClutchLabel))

	m.SteeringWheel = stream.Share(stream.Map(live(src, fieldSteeringAngle, cds.Any[float64]), decode.SteeringOf))
	m.AccLon = stream.Share(stream.Map(cached(src, fieldAccLon, cds.Below[float64](SentinelAcceleration)), toG))
	m.AccLat = stream.Share(stream.Map(cached(src, fieldAccLat, cds.Below[float64](SentinelAcceleration)), toG))

	// gps
	m.GPSCountry = stream.Share(cached(src, fieldCountry, cds.NotEmpty))
	m.GPSCity = stream.Share(cached(src, fieldCity, cds.NotEmpty))
	m.GPSStreet = stream.Share(cached(src, fieldStreet, cds.NotEmpty))
	m.GPSCrossStreet = stream.Share(cached(src, fieldCrossStreet, cds.NotEmpty))
	m.GPSHouseNumber = stream.Share(cached(src, fieldHouseNumber, cds.NotEmpty))
	m.GPSAltitude = stream.Share(cached(src, fieldAltitude, cds.Below[int](SentinelAltitude)))
	m.GPSLat = stream.Share(cached(src, fieldLatitude, cds.Any[float64]))
	m.GPSLon = stream.Share(cached(src, fieldLongitude, cds.Any[float64]))
	m.GPSHeading = stream.Share(stream.Map(cds.Optional(src.Cached(cds.NavigationGPSExtendedInfo), fieldHeading), Heading))
	m.GPSDirection = stream.Share(stream.Map(m.GPSHeading, Direction))

	// windows
	m.Sunroof = stream.Share(stream.Map(src.Cached(cds.ControlsSunroof), decode.SunroofFromPayload))
	m.WindowDriverFrontState = window(src, cds.ControlsWindowDriverFront, "windowDriverFront")
	m.WindowPassengerFrontState = window(src, cds.ControlsWindowPassengerFront, "windowPassengerFront")
	m.WindowDriverRearState = window(src, cds.ControlsWindowDriverRear, "windowDriverRear")
	m.WindowPassengerRearState = window(src, cds.ControlsWindowPassengerRear, "windowPassengerRear")
	return m
}

// FuelRange is the range left on fuel alone. Never negative, even when the
// reported electric range exceeds the total.
func FuelRange(total, ev float64) float64 { return math.Max(0, total-ev) }

// Heading converts an optional counter-clockwise heading into a clockwise
// bearing.
func Heading(raw stream.Option[float64]) stream.Option[float64] {
	v, ok := raw.Get()
	if !ok {
		return raw
	}
	return stream.Some(decode.ClockwiseHeading(v))
}

// Direction buckets an optional bearing, DirectionUnknown when absent.
func Direction(heading stream.Option[float64]) decode.Direction {
	v, ok := heading.Get()
	if !ok {
		return decode.DirectionUnknown
	}
	return decode.DirectionOf(v)
}

func toG(v float64) float64 { return v / StandardGravity }

func live[T any](src cds.Source, f cds.Field[T], valid func(T) bool) stream.Stream[T] {
	return cds.Extract(src.Live(f.Property), f, valid)
}

func cached[T any](src cds.Source, f cds.Field[T], valid func(T) bool) stream.Stream[T] {
	return cds.Extract(src.Cached(f.Property), f, valid)
}

// inUnits combines a raw car-unit stream with the unit configuration.
// Conversions that overflow to a non-finite value are dropped.
func inUnits(raw stream.Stream[float64], u stream.Stream[units.VehicleUnits], conv func(units.VehicleUnits, float64) float64) stream.Stream[float64] {
	return stream.Filter(stream.CombineLatest2(raw, u, func(v float64, vu units.VehicleUnits) float64 {
		return conv(vu, v)
	}), finite)
}

func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

func window(src cds.Source, id cds.PropertyID, key string) stream.Stream[decode.WindowState] {
	return stream.Share(stream.Map(src.Cached(id), func(p cds.Payload) decode.WindowState {
		return decode.WindowFromPayload(p, key)
	}))
}
