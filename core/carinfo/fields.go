package carinfo

import "github.com/kilianp07/carinfo/core/cds"

// Sentinels reported by the vehicle in place of a value.
const (
	SentinelPercent      = 255
	SentinelTemperature  = 255
	SentinelAltitude     = 32767
	SentinelEVRange      = 4093
	SentinelAcceleration = 65000
)

// StandardGravity converts m/s² into G.
const StandardGravity = 9.80665

var (
	fieldEVLevel         = cds.Number(cds.SensorsSOCBatteryHybrid, "SOCBatteryHybrid")
	fieldFuelTankLevel   = cds.Number(cds.SensorsFuel, "fuel", "tanklevel")
	fieldFuelRange       = cds.Number(cds.SensorsFuel, "fuel", "range")
	fieldAccBatteryLevel = cds.Number(cds.SensorsBattery, "battery")
	fieldEVRange         = cds.Number(cds.DrivingDisplayRangeEV, "displayRangeElectricVehicle")

	fieldEngineTemp    = cds.Number(cds.EngineTemperature, "temperature", "engine")
	fieldOilTemp       = cds.Number(cds.EngineTemperature, "temperature", "oil")
	fieldBatteryTemp   = cds.Number(cds.SensorsBatteryTemp, "batteryTemp")
	fieldTempInterior  = cds.Number(cds.SensorsTemperatureInterior, "temperatureInterior")
	fieldTempExterior  = cds.Number(cds.SensorsTemperatureExterior, "temperatureExterior")
	fieldTempExchanger = cds.Number(cds.ClimateACSystemTemperatures, "ACSystemTemperatures", "heatExchanger")

	fieldDrivingMode   = cds.Integer(cds.DrivingMode, "mode")
	fieldGear          = cds.Integer(cds.DrivingGear, "gear")
	fieldSpeedActual   = cds.Number(cds.DrivingSpeedActual, "speedActual")
	fieldSpeedDisplay  = cds.Number(cds.DrivingSpeedDisplayed, "speedDisplayed")
	fieldAccelerator   = cds.Integer(cds.DrivingAcceleratorPedal, "acceleratorPedal", "position")
	fieldBrakeContact  = cds.Integer(cds.DrivingBrakeContact, "brakeContact")
	fieldParkingBrake  = cds.Integer(cds.DrivingParkingBrake, "parkingBrake")
	fieldClutchPedal   = cds.Integer(cds.DrivingClutchPedal, "clutchPedal", "position")
	fieldGearboxType   = cds.Integer(cds.EngineInfo, "info", "gearboxType")
	fieldSteeringAngle = cds.Number(cds.DrivingSteeringWheel, "steeringWheel", "angle")
	fieldAccLon        = cds.Number(cds.DrivingAcceleration, "acceleration", "longitudinal")
	fieldAccLat        = cds.Number(cds.DrivingAcceleration, "acceleration", "lateral")
	fieldEngineRPM     = cds.Integer(cds.EngineRPMSpeed, "RPMSpeed")

	fieldCountry     = cds.Text(cds.NavigationCurrentPositionDetailedInfo, "currentPositionDetailedInfo", "country")
	fieldCity        = cds.Text(cds.NavigationCurrentPositionDetailedInfo, "currentPositionDetailedInfo", "city")
	fieldStreet      = cds.Text(cds.NavigationCurrentPositionDetailedInfo, "currentPositionDetailedInfo", "street")
	fieldCrossStreet = cds.Text(cds.NavigationCurrentPositionDetailedInfo, "currentPositionDetailedInfo", "crossStreet")
	fieldHouseNumber = cds.Text(cds.NavigationCurrentPositionDetailedInfo, "currentPositionDetailedInfo", "houseNumber")
	fieldAltitude    = cds.Integer(cds.NavigationGPSExtendedInfo, "GPSExtendedInfo", "altitude")
	fieldHeading     = cds.Number(cds.NavigationGPSExtendedInfo, "GPSExtendedInfo", "heading")
	fieldLatitude    = cds.Number(cds.NavigationGPSPosition, "GPSPosition", "latitude")
	fieldLongitude   = cds.Number(cds.NavigationGPSPosition, "GPSPosition", "longitude")
)
