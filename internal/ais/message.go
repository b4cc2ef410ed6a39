package ais

// MessageType tags which AIS message variant a Message carries. Each
// tag corresponds to exactly one of the payload structs in types.go and one
// pair of Encode*/Decode* functions; Encode dispatches on this tag
// instead of walking a class hierarchy.
type MessageType int

const (
	MessageUnknown MessageType = iota
	MessagePositionA1
	MessagePositionA2
	MessagePositionA3
	MessageBaseStation
	MessageStaticVoyage
	MessagePositionB18
	MessagePositionB19
	MessageAidToNavigation
	MessageStaticDataA
	MessageStaticDataB
)

// Message is a tagged variant over every AIS payload this simulator
// emits. Exactly one of the payload fields is populated, selected by
// Type.
type Message struct {
	Type MessageType

	Position     PositionReport
	BaseStation  BaseStationReport
	StaticVoyage StaticVoyageData
	ClassBExt    ClassBExtended
	AidNav       AidToNavigation
	StaticA      StaticDataReportA
	StaticB      StaticDataReportB
}

// Encode dispatches m to the encoder matching its Type and returns the
// raw, unarmored bit vector.
func Encode(m Message) ([]bool, error) {
	switch m.Type {
	case MessagePositionA1:
		return EncodeClassAPosition(m.Position, 1)
	case MessagePositionA2:
		return EncodeClassAPosition(m.Position, 2)
	case MessagePositionA3:
		return EncodeClassAPosition(m.Position, 3)
	case MessageBaseStation:
		return EncodeBaseStationReport(m.BaseStation)
	case MessageStaticVoyage:
		return EncodeStaticVoyageData(m.StaticVoyage)
	case MessagePositionB18:
		return EncodeClassBPosition(m.Position)
	case MessagePositionB19:
		return EncodeClassBExtended(m.ClassBExt)
	case MessageAidToNavigation:
		return EncodeAidToNavigation(m.AidNav)
	case MessageStaticDataA:
		return EncodeStaticDataReportA(m.StaticA)
	case MessageStaticDataB:
		return EncodeStaticDataReportB(m.StaticB)
	default:
		return nil, ErrUnknownMessageType
	}
}
