package fleet

// Thing attribute names used by the registration pipeline.
const (
	AttrRegistrationWay    = "RegistrationWay"
	AttrSensorProvider     = "SensorProvider"
	AttrSensorOrganization = "SensorOrganization"
)

// DeactivatedGroupName is the membership group holding deactivated devices.
// Being in the group hides a device from active-only listings; the ledger
// label is the authoritative flag.
const DeactivatedGroupName = "deactivated"

// DisconnectReasonNotProvisioned is a synthetic reason for devices that have
// never connected, not part of the broker's reason set.
const DisconnectReasonNotProvisioned = "NOT_PROVISIONED"

var disconnectReasonDescriptions = map[string]string{
	"AUTH_ERROR": "The client failed to authenticate or authorization failed.",
	"CLIENT_ERROR": "The client did something wrong that causes it to disconnect. " +
		"For example, a client will be disconnected for sending more " +
		"than 1 MQTT CONNECT packet on the same connection or if the " +
		"client attempts to publish with a payload that exceeds the " +
		"payload limit.",
	"CLIENT_INITIATED_DISCONNECT": "The client indicates that it will disconnect. " +
		"The client can do this by sending either a " +
		"MQTT DISCONNECT control packet or a Close " +
		"frame if the client is using a WebSocket " +
		"connection.",
	"CONNECTION_LOST": "The client-server connection is cut off. This can happen " +
		"during a period of high network latency or when the " +
		"internet connection is lost.",
	"DUPLICATE_CLIENTID": "The client is using a client ID that is already in " +
		"use. In this case, the client that is already " +
		"connected will be disconnected with this disconnect " +
		"reason.",
	"FORBIDDEN_ACCESS": "The client is not allowed to be connected. For example, " +
		"a client with a denied IP address will fail to connect.",
	"MQTT_KEEP_ALIVE_TIMEOUT": "If there is no client-server communication for " +
		"1.5x of the client's keep-alive time, the client " +
		"is disconnected.",
	"SERVER_ERROR": "Disconnected due to unexpected server issues.",
	"SERVER_INITIATED_DISCONNECT": "Server intentionally disconnects a client for " +
		"operational reasons.",
	"THROTTLED": "The client is disconnected for exceeding a throttling limit.",
	"WEBSOCKET_TTL_EXPIRATION": "The client is disconnected because a WebSocket " +
		"has been connected longer than its time-to-live " +
		"value.",
	DisconnectReasonNotProvisioned: "The client has not been provisioned yet.",
}

// DisconnectReasonDescription returns the human readable description for a
// broker disconnect reason code, or the empty string for unknown codes.
func DisconnectReasonDescription(reason string) string {
	return disconnectReasonDescriptions[reason]
}
