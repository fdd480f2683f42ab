package grading

import "github.com/yigit/gpacalc/internal/domain"

// Bar colors by score band
const (
	ColorNoScore = "#9ca3af"
	ColorA       = "#10B981"
	ColorAMinus  = "#34D399"
	ColorBPlus   = "#FBBF24"
	ColorB       = "#FCD34D"
	ColorBMinus  = "#FB923C"
	ColorC       = "#F59E0B"
	ColorD       = "#F87171"
	ColorF       = "#EF4444"
)

var colorBands = []struct {
	min   float64
	color string
}{
	{93, ColorA},
	{89, ColorAMinus},
	{84, ColorBPlus},
	{80, ColorB},
	{76, ColorBMinus},
	{70, ColorC},
	{60, ColorD},
}

// ChartPoint is one bar of the per-course performance chart.
type ChartPoint struct {
	CourseID int64   `json:"courseId"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Grade    string  `json:"grade"`
	Points   float64 `json:"points"`
	Fill     string  `json:"fill"`
}

// GradeColor returns the bar color for a score.
func GradeColor(score *float64) string {
	if score == nil {
		return ColorNoScore
	}
	for _, b := range colorBands {
		if *score >= b.min {
			return b.color
		}
	}
	return ColorF
}

// Chart builds the chart series for the courses that count towards the GPA,
// in list order.
func (s Scale) Chart(courses []domain.Course) []ChartPoint {
	points := make([]ChartPoint, 0, len(courses))
	for _, c := range courses {
		if !c.Counted() {
			continue
		}
		grade, gp := s.Resolve(c.Score)
		points = append(points, ChartPoint{
			CourseID: c.ID,
			Name:     c.Name,
			Score:    *c.Score,
			Grade:    grade,
			Points:   gp,
			Fill:     GradeColor(c.Score),
		})
	}
	return points
}
