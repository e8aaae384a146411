package engine

import "github.com/ftahirops/mtop/model"

// birdPyramid is the classic 1:3:8:20:600 safety-event ratio. It is a
// fixed reference, not derived from uploaded data.
var birdPyramid = []model.PyramidLevel{
	{Level: "Lost-time accident", Count: 1, Color: "#FF6B6B", Description: "Serious injuries with time off work"},
	{Level: "Accident without lost time", Count: 3, Color: "#FF8E53", Description: "Minor injuries, no time off"},
	{Level: "Incident with damage", Count: 8, Color: "#FFB142", Description: "Significant material damage"},
	{Level: "Near miss", Count: 20, Color: "#FFDA79", Description: "Situations that almost caused an accident"},
	{Level: "Unsafe acts", Count: 600, Color: "#FFF8E1", Description: "Unsafe behaviors or conditions"},
}

// PyramidNotes interpret the pyramid.
var PyramidNotes = []string{
	"1:3:8:20:600 is the classic ratio of safety events",
	"Base (600): unsafe acts are prevention opportunities",
	"Top (1): serious accidents are avoidable consequences",
	"Focus on the base to prevent the top",
	"Build a culture of reporting near misses",
}

// BirdPyramid returns a copy of the fixed pyramid, top tier first.
func BirdPyramid() []model.PyramidLevel {
	out := make([]model.PyramidLevel, len(birdPyramid))
	copy(out, birdPyramid)
	return out
}
