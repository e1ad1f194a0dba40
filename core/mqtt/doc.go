// Package mqtt holds the transport contracts between the property hub and a
// broker connection.
package mqtt
