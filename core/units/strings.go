package units

var (
	temperatureNames = [...]string{"°C", "°F"}
	distanceNames    = [...]string{"km", "mi"}
	fuelNames        = [...]string{"l", "gal UK", "gal US"}
	consumptionNames = [...]string{"l/100km", "mpg UK", "mpg US", "km/l"}
	speedNames       = [...]string{"km/h", "mph"}
)

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "?"
	}
	return names[i]
}

func (t Temperature) String() string { return name(temperatureNames[:], int(t)) }
func (d Distance) String() string    { return name(distanceNames[:], int(d)) }
func (f Fuel) String() string        { return name(fuelNames[:], int(f)) }
func (c Consumption) String() string { return name(consumptionNames[:], int(c)) }
func (s Speed) String() string       { return name(speedNames[:], int(s)) }

func (u VehicleUnits) String() string {
	return u.Distance.String() + " " + u.Fuel.String() + " " + u.Temperature.String() + " " + u.Consumption.String()
}
