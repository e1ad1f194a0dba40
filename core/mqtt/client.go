package mqtt

import "github.com/kilianp07/carinfo/core/cds"

// PropertySink receives raw property updates from a transport.
type PropertySink interface {
	PublishJSON(id cds.PropertyID, data []byte) error
	// Interested lists the properties to subscribe after a (re)connect.
	Interested() []cds.PropertyID
}

// PropertyPublisher sends property updates to the broker, for example when
// replaying a capture.
type PropertyPublisher interface {
	PublishProperty(id cds.PropertyID, payload []byte) error
}
