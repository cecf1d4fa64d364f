package processing

import "fmt"

// EnergyLevel maps an energy arc and a segment's position to the energy
// descriptor fed into the segment prompt. Pure function of its arguments.
func EnergyLevel(energyArc string, segmentNumber, totalSegments int) string {
	progress := float64(segmentNumber) / float64(totalSegments)
	switch energyArc {
	case "building":
		return fmt.Sprintf("%d%% - Building from calm to excited", int(60+(35*progress)+0.5))
	case "problem-solution":
		if progress < 0.3 {
			return "70% - Concerned, explaining problem"
		}
		if progress < 0.7 {
			return "60% - Working through solution"
		}
		return "90% - Excited about results"
	case "discovery":
		if progress < 0.5 {
			return "75% - Curious and exploring"
		}
		return "85% - Convinced and enthusiastic"
	default:
		return "80% - Steady, engaging energy throughout"
	}
}
