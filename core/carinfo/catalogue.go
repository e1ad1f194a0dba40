package carinfo

import (
	"fmt"

	"github.com/kilianp07/carinfo/core/decode"
	"github.com/kilianp07/carinfo/core/stream"
)

// Metric names used by exporters and the watch command.
const (
	NameEVLevel         = "ev_level"
	NameFuelLevel       = "fuel_level"
	NameAccBatteryLevel = "acc_battery_level"
	NameEVRange         = "ev_range"
	NameTotalRange      = "total_range"
	NameFuelRange       = "fuel_range"
	NameEngineTemp      = "engine_temp"
	NameOilTemp         = "oil_temp"
	NameBatteryTemp     = "battery_temp"
	NameTempInterior    = "temp_interior"
	NameTempExterior    = "temp_exterior"
	NameTempExchanger   = "temp_exchanger"
	NameDrivingGear     = "driving_gear"
	NameSpeedActual     = "speed_actual"
	NameSpeedDisplayed  = "speed_displayed"
	NameAccelerator     = "accelerator"
	NameEngineRPM       = "engine_rpm"
	NameClutchPosition  = "clutch_position"
	NameSteeringAngle   = "steering_angle"
	NameAccLon          = "acc_lon"
	NameAccLat          = "acc_lat"
	NameGPSAltitude     = "gps_altitude"
	NameGPSLat          = "gps_lat"
	NameGPSLon          = "gps_lon"
	NameGPSHeading      = "gps_heading"

	NameUnits                   = "units"
	NameDrivingMode             = "driving_mode"
	NameDrivingGearName         = "driving_gear_name"
	NameBrakeInfo               = "brake_info"
	NameClutchInfo              = "clutch_info"
	NameSteeringWheel           = "steering_wheel"
	NameGPSCountry              = "gps_country"
	NameGPSCity                 = "gps_city"
	NameGPSStreet               = "gps_street"
	NameGPSCrossStreet          = "gps_cross_street"
	NameGPSHouseNumber          = "gps_house_number"
	NameGPSDirection            = "gps_direction"
	NameSunroof                 = "sunroof"
	NameWindowDriverFront       = "window_driver_front"
	NameWindowPassengerFront    = "window_passenger_front"
	NameWindowDriverRear        = "window_driver_rear"
	NameWindowPassengerRear     = "window_passenger_rear"
	NameUnitsAverageSpeed       = "units_average_speed"
	NameUnitsAverageConsumption = "units_average_consumption"
)

// Group is a named selection of metrics shown together.
type Group struct {
	Name    string
	Metrics []string
}

// Groups lists the metric groups known to the watch command.
var Groups = []Group{
	{Name: "overview", Metrics: []string{
		NameEVLevel, NameFuelLevel, NameAccBatteryLevel, NameEVRange, NameFuelRange, NameTotalRange,
		NameEngineTemp, NameOilTemp, NameBatteryTemp, NameTempInterior, NameTempExterior, NameUnits,
	}},
	{Name: "driving", Metrics: []string{
		NameDrivingMode, NameDrivingGearName, NameSpeedActual, NameSpeedDisplayed, NameAccelerator,
		NameEngineRPM, NameBrakeInfo, NameClutchInfo, NameSteeringWheel, NameAccLon, NameAccLat,
		NameTempExchanger,
	}},
	{Name: "gps", Metrics: []string{
		NameGPSCountry, NameGPSCity, NameGPSStreet, NameGPSCrossStreet, NameGPSHouseNumber,
		NameGPSAltitude, NameGPSLat, NameGPSLon, NameGPSHeading, NameGPSDirection,
	}},
	{Name: "windows", Metrics: []string{
		NameSunroof, NameWindowDriverFront, NameWindowPassengerFront, NameWindowDriverRear, NameWindowPassengerRear,
	}},
}

// FindGroup returns the group called name.
func FindGroup(name string) (Group, bool) {
	for _, g := range Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Gauges returns every numeric metric by name.
func (m *Metrics) Gauges() map[string]stream.Stream[float64] {
	return map[string]stream.Stream[float64]{
		NameEVLevel:         m.EVLevel,
		NameFuelLevel:       m.FuelLevel,
		NameAccBatteryLevel: m.AccBatteryLevel,
		NameEVRange:         m.EVRange,
		NameTotalRange:      m.TotalRange,
		NameFuelRange:       m.FuelRange,
		NameEngineTemp:      m.EngineTemp,
		NameOilTemp:         m.OilTemp,
		NameBatteryTemp:     m.BatteryTemp,
		NameTempInterior:    m.TempInterior,
		NameTempExterior:    m.TempExterior,
		NameTempExchanger:   m.TempExchanger,
		NameDrivingGear:     float(m.DrivingGear),
		NameSpeedActual:     m.SpeedActual,
		NameSpeedDisplayed:  m.SpeedDisplayed,
		NameAccelerator:     float(m.Accelerator),
		NameEngineRPM:       float(m.EngineRPM),
		NameClutchPosition:  float(m.ClutchPedalPosition),
		NameSteeringAngle:   stream.Map(m.SteeringWheel, func(s decode.Steering) float64 { return s.Degrees }),
		NameAccLon:          m.AccLon,
		NameAccLat:          m.AccLat,
		NameGPSAltitude:     float(m.GPSAltitude),
		NameGPSLat:          m.GPSLat,
		NameGPSLon:          m.GPSLon,
		NameGPSHeading: stream.FilterMap(m.GPSHeading, func(h stream.Option[float64]) (float64, bool) {
			return h.Get()
		}),
	}
}

// Labels returns every textual metric by name.
func (m *Metrics) Labels() map[string]stream.Stream[string] {
	return map[string]stream.Stream[string]{
		NameUnits:                   text(m.Units),
		NameUnitsAverageConsumption: text(m.UnitsAverageConsumption),
		NameUnitsAverageSpeed:       text(m.UnitsAverageSpeed),
		NameDrivingMode:             m.DrivingMode,
		NameDrivingGearName:         m.DrivingGearName,
		NameBrakeInfo:               m.BrakeInfo,
		NameClutchInfo:              m.ClutchInfo,
		NameSteeringWheel:           text(m.SteeringWheel),
		NameGPSCountry:              m.GPSCountry,
		NameGPSCity:                 m.GPSCity,
		NameGPSStreet:               m.GPSStreet,
		NameGPSCrossStreet:          m.GPSCrossStreet,
		NameGPSHouseNumber:          m.GPSHouseNumber,
		NameGPSDirection:            text(m.GPSDirection),
		NameSunroof:                 text(m.Sunroof),
		NameWindowDriverFront:       text(m.WindowDriverFrontState),
		NameWindowPassengerFront:    text(m.WindowPassengerFrontState),
		NameWindowDriverRear:        text(m.WindowDriverRearState),
		NameWindowPassengerRear:     text(m.WindowPassengerRearState),
	}
}

func float[T int | float64](s stream.Stream[T]) stream.Stream[float64] {
	return stream.Map(s, func(v T) float64 { return float64(v) })
}

func text[T fmt.Stringer](s stream.Stream[T]) stream.Stream[string] {
	return stream.Map(s, func(v T) string { return v.String() })
}
