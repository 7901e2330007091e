package domain

import "fmt"

// Stage is a position on the three-step order timeline.
type Stage int

const (
	StageConfirmed Stage = iota
	StageInTransit
	StageCompleted
)

var stageNames = [...]string{"Order Confirmed", "Shipment In Transit", "Order Completed"}

func (s Stage) String() string {
	if s < StageConfirmed || s > StageCompleted {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// stageByState maps backend state names to timeline stages. Anything not
// listed belongs to the first stage.
var stageByState = map[string]Stage{
	"Order Confirmed":             StageConfirmed,
	"Shipment In Transit":         StageInTransit,
	"Shipment Departure from POL": StageInTransit,
	"Export Clearance Obtained":   StageInTransit,
	"Shipment Arrival at POD":     StageInTransit,
	"Order Completed":             StageCompleted,
}

// stageByCode maps the list-view order_stage codes.
var stageByCode = map[string]Stage{
	"order_confirmed": StageConfirmed,
	"in_transit":      StageInTransit,
	"order_completed": StageCompleted,
}

// CurrentState returns the name of the state flagged as current, or "".
func CurrentState(logs []StateActivityLog) string {
	for _, l := range logs {
		if l.IsCurrentState {
			return l.StateName
		}
	}
	return ""
}

// TimelineStage maps the current state of an order to its timeline stage.
func TimelineStage(d OrderDetails) Stage {
	if s, ok := stageByState[CurrentState(d.StateActivityLog)]; ok {
		return s
	}
	return StageConfirmed
}

// OrderStage maps a list-view order_stage code. Unknown codes report false.
func OrderStage(code string) (Stage, bool) {
	s, ok := stageByCode[code]
	return s, ok
}

// ItemsSummary renders a product list as "first and N more item(s)".
func ItemsSummary(items []string) string {
	switch len(items) {
	case 0:
		return "-"
	case 1:
		return items[0]
	}
	more := len(items) - 1
	suffix := ""
	if more > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("%s and %d more item%s", items[0], more, suffix)
}
