package render

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
)

const (
	brandColor     = "#003366"
	thresholdColor = "green"
	gridColor      = "#d0d7de"
	textColor      = "#31333f"
	mutedColor     = "#6b7280"
)

// inline strips the XML declaration so the document can be embedded in HTML
func inline(buf *bytes.Buffer) template.HTML {
	s := buf.String()
	if i := strings.Index(s, "<svg"); i > 0 {
		s = s[i:]
	}
	return template.HTML(s) // #nosec G203 -- all text nodes are escaped by svgo
}

func attr(name, value string) string {
	return name + `="` + template.HTMLEscapeString(value) + `"`
}

func round(v float64) int {
	return int(math.Round(v))
}

const (
	gaugeWidth  = 300
	gaugeHeight = 200
	gaugeCX     = 150
	gaugeCY     = 160
	gaugeOuter  = 120
	gaugeInner  = 80
	gaugeBar    = 100
)

// gaugePoint maps a score onto the half circle, 0 on the left and
// ScoreMax on the right
func gaugePoint(score, radius int) (int, int) {
	theta := math.Pi * (1 - float64(score)/float64(types.ScoreMax))
	return round(gaugeCX + float64(radius)*math.Cos(theta)),
		round(gaugeCY - float64(radius)*math.Sin(theta))
}

func sectorPath(from, to int) string {
	ox0, oy0 := gaugePoint(from, gaugeOuter)
	ox1, oy1 := gaugePoint(to, gaugeOuter)
	ix1, iy1 := gaugePoint(to, gaugeInner)
	ix0, iy0 := gaugePoint(from, gaugeInner)
	return fmt.Sprintf("M%d,%d A%d,%d 0 0,1 %d,%d L%d,%d A%d,%d 0 0,0 %d,%d Z",
		ox0, oy0, gaugeOuter, gaugeOuter, ox1, oy1,
		ix1, iy1, gaugeInner, gaugeInner, ix0, iy0)
}

// gaugeChart draws the riskometer: three coloured bands with the band
// holding the score outlined, a value bar, a threshold marker at the score
// and the delta against the reference score.
func gaugeChart(score, reference int) template.HTML {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(gaugeWidth, gaugeHeight, 0, 0, gaugeWidth, gaugeHeight)
	canvas.Title(fmt.Sprintf("AI Credit Score %d of %d", score, types.ScoreMax))

	canvas.Text(gaugeCX, 18, "AI Credit Score",
		`text-anchor="middle"`, `font-size="16"`, attr("fill", textColor))

	active := types.BandOf(score)
	for _, band := range types.AllRiskBands() {
		from, to := band.Range()
		class := "band band-" + band.String()
		stroke := []string{`stroke="gray"`, `stroke-width="1"`}
		if band == active {
			class += " active"
			stroke = []string{attr("stroke", brandColor), `stroke-width="3"`}
		}
		canvas.Path(sectorPath(from, to),
			append([]string{attr("class", class), attr("fill", band.Color())}, stroke...)...)
	}

	if score > 0 {
		x0, y0 := gaugePoint(types.ScoreMin, gaugeBar)
		x1, y1 := gaugePoint(score, gaugeBar)
		canvas.Path(fmt.Sprintf("M%d,%d A%d,%d 0 0,1 %d,%d", x0, y0, gaugeBar, gaugeBar, x1, y1),
			`class="value-bar"`, `fill="none"`, attr("stroke", brandColor), `stroke-width="14"`)
	}

	tx0, ty0 := gaugePoint(score, gaugeInner-6)
	tx1, ty1 := gaugePoint(score, gaugeOuter+6)
	canvas.Line(tx0, ty0, tx1, ty1,
		`class="threshold"`, attr("stroke", thresholdColor), `stroke-width="4"`)

	for tick := types.ScoreMin; tick <= types.ScoreMax; tick += 250 {
		x, y := gaugePoint(tick, gaugeOuter+14)
		canvas.Text(x, y+4, strconv.Itoa(tick),
			`text-anchor="middle"`, `font-size="11"`, attr("fill", mutedColor))
	}

	canvas.Text(gaugeCX, gaugeCY-12, strconv.Itoa(score),
		`class="score"`, `text-anchor="middle"`, `font-size="40"`, `font-weight="bold"`, attr("fill", textColor))

	delta := score - reference
	deltaColor := mutedColor
	switch {
	case delta > 0:
		deltaColor = "green"
	case delta < 0:
		deltaColor = "red"
	}
	canvas.Text(gaugeCX, gaugeCY+26, arrow(float64(delta))+" "+strconv.Itoa(abs(delta)),
		`class="delta"`, `text-anchor="middle"`, `font-size="16"`, attr("fill", deltaColor))

	canvas.End()
	return inline(&buf)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const (
	radarWidth  = 380
	radarHeight = 300
	radarCX     = 190
	radarCY     = 160
	radarRadius = 100
	radarMax    = 100.0
)

func radarPoint(i, n int, value float64) (int, int) {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	r := radarRadius * value / radarMax
	return round(radarCX + r*math.Cos(angle)), round(radarCY + r*math.Sin(angle))
}

func radarPolygon(n int, value func(i int) float64) ([]int, []int) {
	xs := make([]int, n)
	ys := make([]int, n)
	for i := range n {
		xs[i], ys[i] = radarPoint(i, n, value(i))
	}
	return xs, ys
}

// radarChart plots factor scores on a closed polygon with a fixed 0-100 radial axis
func radarChart(factors []model.Factor) template.HTML {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(radarWidth, radarHeight, 0, 0, radarWidth, radarHeight)
	canvas.Title("Scoring Radar")
	canvas.Text(10, 18, "Scoring Radar", `font-size="16"`, attr("fill", textColor))

	n := len(factors)
	canvas.Gstyle("fill:none;stroke:" + gridColor + ";stroke-width:1")
	for ring := 20.0; ring <= radarMax; ring += 20 {
		if n >= 3 {
			xs, ys := radarPolygon(n, func(int) float64 { return ring })
			canvas.Polygon(xs, ys)
		} else {
			canvas.Circle(radarCX, radarCY, round(radarRadius*ring/radarMax))
		}
	}
	for i := range n {
		x, y := radarPoint(i, n, radarMax)
		canvas.Line(radarCX, radarCY, x, y)
	}
	canvas.Gend()

	for ring := 20; ring <= int(radarMax); ring += 20 {
		canvas.Text(radarCX+3, radarCY-round(radarRadius*float64(ring)/radarMax)-2, strconv.Itoa(ring),
			`font-size="9"`, attr("fill", mutedColor))
	}

	if n > 0 {
		xs, ys := radarPolygon(n, func(i int) float64 { return factors[i].Score })
		canvas.Polygon(xs, ys, `class="radar-area"`,
			attr("fill", brandColor), `fill-opacity="0.35"`, attr("stroke", brandColor), `stroke-width="2"`)
	}

	for i, f := range factors {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		x, y := radarPoint(i, n, radarMax*1.14)
		anchor := "middle"
		switch c := math.Cos(angle); {
		case c > 0.1:
			anchor = "start"
		case c < -0.1:
			anchor = "end"
		}
		canvas.Text(x, y+4, f.Category,
			attr("text-anchor", anchor), `font-size="11"`, attr("fill", textColor))
	}

	canvas.End()
	return inline(&buf)
}

const (
	barWidth   = 380
	barLeft    = 140
	barPlot    = 200
	barTop     = 30
	barRow     = 34
	barAxisMax = 110.0
)

// blues interpolates the sequential blue scale, light for 0 and dark for 100
func blues(score float64) string {
	t := math.Max(0, math.Min(1, score/100))
	lerp := func(a, b float64) int { return round(a + (b-a)*t) }
	return fmt.Sprintf("#%02x%02x%02x", lerp(198, 8), lerp(219, 48), lerp(239, 107))
}

func barX(v float64) int {
	return barLeft + round(v*barPlot/barAxisMax)
}

// barChart draws one horizontal bar per factor on a 0-110 axis
func barChart(factors []model.Factor) template.HTML {
	height := barTop + len(factors)*barRow + 24

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(barWidth, height, 0, 0, barWidth, height)
	canvas.Title("Category Performance (0-100)")
	canvas.Text(10, 18, "Category Performance (0-100)", `font-size="16"`, attr("fill", textColor))

	bottom := barTop + len(factors)*barRow
	for tick := 0; tick <= 100; tick += 20 {
		x := barX(float64(tick))
		canvas.Line(x, barTop, x, bottom, attr("stroke", gridColor), `stroke-width="1"`)
		canvas.Text(x, bottom+16, strconv.Itoa(tick),
			`text-anchor="middle"`, `font-size="10"`, attr("fill", mutedColor))
	}

	for i, f := range factors {
		y := barTop + i*barRow + 6
		h := barRow - 12
		w := barX(f.Score) - barLeft
		canvas.Text(barLeft-8, y+h/2+4, f.Category,
			`text-anchor="end"`, `font-size="11"`, attr("fill", textColor))
		canvas.Rect(barLeft, y, w, h, `class="bar"`, attr("fill", blues(f.Score)))
		canvas.Text(barLeft+w+4, y+h/2+4, formatNumber(f.Score),
			`font-size="11"`, attr("fill", textColor))
	}

	canvas.End()
	return inline(&buf)
}

const (
	progressWidth  = 240
	progressHeight = 12
)

// progressBar draws a 0-1 fill as a rounded bar
func progressBar(fraction float64) template.HTML {
	fraction = math.Max(0, math.Min(1, fraction))

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(progressWidth, progressHeight, 0, 0, progressWidth, progressHeight)
	canvas.Title(formatProgress(fraction))
	canvas.Roundrect(0, 0, progressWidth, progressHeight, 6, 6, `fill="#e9ecef"`)
	if w := round(progressWidth * fraction); w > 0 {
		canvas.Roundrect(0, 0, w, progressHeight, 6, 6, `class="progress-fill"`, attr("fill", brandColor))
	}
	canvas.End()
	return inline(&buf)
}
