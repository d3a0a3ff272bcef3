package pages

import (
	"encoding/json"
	"strings"

	"github.com/a-h/templ"

	"github.com/pybites/insights/internal/model"
)

// writeMonthChart emits a canvas plus the Chart.js init for a
// posts-per-month series. Data is carried in a JSON script tag so the
// inline JS stays static.
func writeMonthChart(b *strings.Builder, id, label string, counts []model.MonthCount) {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	for i, c := range counts {
		labels[i] = c.Label()
		values[i] = c.Posts
	}
	writeChart(b, id, "line", label, labels, values)
}

// writeAuthorChart emits a horizontal bar chart of posts per author.
func writeAuthorChart(b *strings.Builder, id, label string, counts []model.AuthorCount) {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	for i, c := range counts {
		labels[i] = c.Author
		values[i] = c.Posts
	}
	writeChart(b, id, "bar", label, labels, values)
}

func writeChart(b *strings.Builder, id, kind, label string, labels []string, values []int) {
	payload, err := json.Marshal(map[string]any{
		"type":   kind,
		"label":  label,
		"labels": labels,
		"values": values,
	})
	if err != nil {
		return
	}

	b.WriteString("<div class=\"chart\"><canvas id=\"")
	b.WriteString(templ.EscapeString(id))
	b.WriteString("\"></canvas></div>\n")
	b.WriteString("<script type=\"application/json\" id=\"")
	b.WriteString(templ.EscapeString(id))
	b.WriteString("-data\">")
	// json.Marshal escapes <, > and & so the payload is safe in a script tag.
	b.Write(payload)
	b.WriteString("</script>\n<script>\n(function(){\n")
	b.WriteString("var el=document.getElementById(" + jsString(id) + ");\n")
	b.WriteString("var data=JSON.parse(document.getElementById(" + jsString(id+"-data") + ").textContent);\n")
	b.WriteString(`new Chart(el,{type:data.type,data:{labels:data.labels,datasets:[{label:data.label,data:data.values,backgroundColor:"#38bdf8",borderColor:"#0ea5e9",fill:false,tension:0.2}]},options:{indexAxis:data.type==="bar"?"y":"x",plugins:{legend:{display:false}},scales:{x:{ticks:{precision:0}},y:{ticks:{precision:0}}}}});`)
	b.WriteString("\n})();\n</script>\n")
}

func jsString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(out)
}
