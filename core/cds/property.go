package cds

// PropertyID names one property bus endpoint.
type PropertyID string

const (
	VehicleUnits PropertyID = "vehicle.units"

	DrivingAverageConsumption PropertyID = "driving.averageConsumption"
	DrivingAverageSpeed       PropertyID = "driving.averageSpeed"
	DrivingDisplayRangeEV     PropertyID = "driving.displayRangeElectricVehicle"
	DrivingMode               PropertyID = "driving.mode"
	DrivingGear               PropertyID = "driving.gear"
	DrivingSpeedActual        PropertyID = "driving.speedActual"
	DrivingSpeedDisplayed     PropertyID = "driving.speedDisplayed"
	DrivingAcceleratorPedal   PropertyID = "driving.acceleratorPedal"
	DrivingBrakeContact       PropertyID = "driving.brakeContact"
	DrivingParkingBrake       PropertyID = "driving.parkingBrake"
	DrivingClutchPedal        PropertyID = "driving.clutchPedal"
	DrivingSteeringWheel      PropertyID = "driving.steeringWheel"
	DrivingAcceleration       PropertyID = "driving.acceleration"

	SensorsSOCBatteryHybrid    PropertyID = "sensors.SOCBatteryHybrid"
	SensorsFuel                PropertyID = "sensors.fuel"
	SensorsBattery             PropertyID = "sensors.battery"
	SensorsBatteryTemp         PropertyID = "sensors.batteryTemp"
	SensorsTemperatureInterior PropertyID = "sensors.temperatureInterior"
	SensorsTemperatureExterior PropertyID = "sensors.temperatureExterior"

	EngineTemperature PropertyID = "engine.temperature"
	EngineInfo        PropertyID = "engine.info"
	EngineRPMSpeed    PropertyID = "engine.RPMSpeed"

	ClimateACSystemTemperatures PropertyID = "climate.ACSystemTemperatures"

	NavigationCurrentPositionDetailedInfo PropertyID = "navigation.currentPositionDetailedInfo"
	NavigationGPSExtendedInfo             PropertyID = "navigation.GPSExtendedInfo"
	NavigationGPSPosition                 PropertyID = "navigation.GPSPosition"

	ControlsSunroof              PropertyID = "controls.sunroof"
	ControlsWindowDriverFront    PropertyID = "controls.windowDriverFront"
	ControlsWindowPassengerFront PropertyID = "controls.windowPassengerFront"
	ControlsWindowDriverRear     PropertyID = "controls.windowDriverRear"
	ControlsWindowPassengerRear  PropertyID = "controls.windowPassengerRear"
)

// Properties lists every known property identifier.
var Properties = []PropertyID{
	VehicleUnits,
	DrivingAverageConsumption, DrivingAverageSpeed, DrivingDisplayRangeEV,
	DrivingMode, DrivingGear, DrivingSpeedActual, DrivingSpeedDisplayed,
	DrivingAcceleratorPedal, DrivingBrakeContact, DrivingParkingBrake,
	DrivingClutchPedal, DrivingSteeringWheel, DrivingAcceleration,
	SensorsSOCBatteryHybrid, SensorsFuel, SensorsBattery, SensorsBatteryTemp,
	SensorsTemperatureInterior, SensorsTemperatureExterior,
	EngineTemperature, EngineInfo, EngineRPMSpeed,
	ClimateACSystemTemperatures,
	NavigationCurrentPositionDetailedInfo, NavigationGPSExtendedInfo, NavigationGPSPosition,
	ControlsSunroof, ControlsWindowDriverFront, ControlsWindowPassengerFront,
	ControlsWindowDriverRear, ControlsWindowPassengerRear,
}

// Known reports whether id is part of the property catalogue.
func Known(id PropertyID) bool {
	for _, p := range Properties {
		if p == id {
			return true
		}
	}
	return false
}
