package face

import "github.com/lixenwraith/tiwe/vmath"

// Dial geometry
const (
	BackgroundRadius = 70

	hourDotSpacing   = 15
	minuteDotSpacing = 9
	minuteDotOffset  = 3
)

// LayoutBackground places the twelve hour ticks on the dial
// The result does not depend on time and is computed once per scene
func LayoutBackground(s *Scene, c Canvas) {
	for i := range s.Background {
		s.Background[i].Clock = c.Project(vmath.AngleFraction(i, BackgroundCount), BackgroundRadius)
	}
}

// HandAngles returns the hour and minute hand angles for a wall-clock time
// The hour hand advances continuously with the minutes
func HandAngles(hour, minute int) (hourAngle, minuteAngle int32) {
	minuteAngle = vmath.AngleFraction(minute, 60)
	hourAngle = vmath.AngleFraction((hour%12)*60+minute, 12*60)
	return hourAngle, minuteAngle
}

// UpdateHourAngleLayout places the hour and minute dots along their hands
// Hour dots sit at radii 0, 15, 30, 45 and minute dots at 12, 21, ... 57
func UpdateHourAngleLayout(s *Scene, c Canvas, hour, minute int) {
	hourAngle, minuteAngle := HandAngles(hour, minute)

	for i := range s.Hours {
		s.Hours[i].Clock = c.Project(hourAngle, i*hourDotSpacing)
	}
	for i := range s.Minutes {
		s.Minutes[i].Clock = c.Project(minuteAngle, (i+1)*minuteDotSpacing+minuteDotOffset)
	}
}
