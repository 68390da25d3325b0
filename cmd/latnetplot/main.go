// Command latnetplot renders the JSONL sweep output that cmd/latnetsearch's
// -sweep-out flag produces as an interactive go-echarts scatter plot: merit
// against the size parameter m, split into one series per kind/construction
// pair, colored by merit.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// sweepRow mirrors cmd/latnetsearch's sweepRow JSON shape.
type sweepRow struct {
	Kind         string  `json:"kind"`
	Construction string  `json:"construction"`
	Strategy     string  `json:"strategy"`
	Dim          int     `json:"dim"`
	M            int     `json:"m"`
	Merit        float64 `json:"merit"`
}

type point struct {
	m     float64
	merit float64
	val   []interface{}
}

func main() {
	inPath := flag.String("in", "sweep.jsonl", "input sweep JSON/JSONL file, as produced by latnetsearch -sweep-out")
	outPath := flag.String("out", "plot_sweep.html", "output HTML file")
	maxMerit := flag.Float64("max-merit", math.Inf(1), "optional filter: drop rows with merit above this value")
	flag.Parse()

	resolvedIn, err := resolveSweepPath(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		os.Exit(1)
	}
	if resolvedIn != *inPath {
		fmt.Fprintf(os.Stderr, "[info] using %s (resolved from %s)\n", resolvedIn, *inPath)
	}

	rows, err := readSweepRows(resolvedIn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "[debug] rows loaded from %s: %d\n", resolvedIn, len(rows))

	reportBestPerConstruction(rows, resolvedIn)

	seriesByConstruction, minMerit, _ := buildSeries(rows, *maxMerit)

	page := components.NewPage().SetPageTitle("Lattice/net search sweep: merit vs. m")

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Merit vs. size parameter m",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
			Formatter: opts.FuncOpts(`
function (p) {
  var v = p.value || [];
  function fix(x){ return (typeof x === 'number') ? x.toFixed(4) : '-'; }
  return [
    '<b>' + p.seriesName + '</b>',
    'm=' + v[0] + ', dim=' + v[2],
    'merit: ' + fix(v[1]),
    'strategy: ' + (v[3] || '-'),
    'kind: ' + (v[4] || '-')
  ].join('<br/>');
}`),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "m",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "merit (lower is better)",
			Type: "value",
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside"},
			opts.DataZoom{Type: "slider"},
		),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: opts.Bool(true)},
				Restore:     &opts.ToolBoxFeatureRestore{Show: opts.Bool(true)},
				DataZoom:    &opts.ToolBoxFeatureDataZoom{Show: opts.Bool(true)},
			},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:       "continuous",
			Dimension:  "1",
			Min:        float32(minMerit),
			Max:        float32(minMerit + 1),
			Calculable: opts.Bool(true),
			Left:       "left",
			Top:        "middle",
			InRange:    &opts.VisualMapInRange{Color: []string{"#0ea5e9", "#22c55e", "#ef4444"}},
		}),
	)

	constructions := make([]string, 0, len(seriesByConstruction))
	for construction := range seriesByConstruction {
		constructions = append(constructions, construction)
	}
	sort.Strings(constructions)

	for _, construction := range constructions {
		pts := seriesByConstruction[construction]
		items := make([]opts.ScatterData, 0, len(pts))
		for _, p := range pts {
			items = append(items, opts.ScatterData{Value: p.val})
		}
		sc.AddSeries(construction, items,
			charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "circle", SymbolSize: 8}),
		)
	}

	injectFilterUI(sc)
	page.AddCharts(sc)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s | rows: %d, series: %d\n", *outPath, len(rows), len(constructions))
}

func reportBestPerConstruction(rows []sweepRow, source string) {
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "no sweep rows to summarize for %s\n", source)
		return
	}
	best := make(map[string]sweepRow)
	for _, r := range rows {
		key := r.Kind + "/" + r.Construction
		if existing, ok := best[key]; !ok || r.Merit < existing.Merit {
			best[key] = r
		}
	}
	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("Best merit per kind/construction from %s\n", source)
	for _, k := range keys {
		r := best[k]
		fmt.Printf("  %-24s strategy=%-9s dim=%-3d m=%-3d merit=%.6g\n", k, r.Strategy, r.Dim, r.M, r.Merit)
	}
}

func buildSeries(rows []sweepRow, maxMerit float64) (map[string][]point, float64, int) {
	seriesByConstruction := make(map[string][]point)
	minMerit := math.Inf(1)
	maxM := 0

	for _, r := range rows {
		if r.Merit > maxMerit {
			continue
		}
		p := point{
			m:     float64(r.M),
			merit: r.Merit,
			val:   []interface{}{r.M, r.Merit, r.Dim, r.Strategy, r.Kind},
		}
		key := r.Kind + "/" + r.Construction
		seriesByConstruction[key] = append(seriesByConstruction[key], p)
		if r.Merit < minMerit {
			minMerit = r.Merit
		}
		if r.M > maxM {
			maxM = r.M
		}
	}
	if math.IsInf(minMerit, 1) {
		minMerit = 0
	}
	for key := range seriesByConstruction {
		pts := seriesByConstruction[key]
		sort.Slice(pts, func(i, j int) bool { return pts[i].m < pts[j].m })
		seriesByConstruction[key] = pts
	}
	return seriesByConstruction, minMerit, maxM
}

// injectFilterUI adds a client-side slider to filter visible points by
// merit, the sweep's single meaningful numeric filter axis.
func injectFilterUI(sc *charts.Scatter) {
	js := `(function(){
  var chart = %MY_ECHARTS%;
  if(!chart) return;
  var dom = chart.getDom();
  if(!dom || !dom.id) return;
  var panelId = dom.id + '_filter_panel';
  if(document.getElementById(panelId)) return;

  function unwrap(list){ return (list||[]).map(d => (d && d.value !== undefined) ? d.value : d); }

  var opt = chart.getOption();
  var series = opt && opt.series ? opt.series : [];
  var all = [];
  series.forEach(function(s){ all = all.concat(unwrap(s.data)); });

  function minmax(data, idx){
    var lo = Infinity, hi = -Infinity;
    data.forEach(function(v){
      if(!v) return;
      var x = v[idx];
      if(x < lo) lo = x;
      if(x > hi) hi = x;
    });
    if(!isFinite(lo)) lo = 0;
    if(!isFinite(hi)) hi = 0;
    return [lo, hi];
  }

  var meritRange = minmax(all, 1);
  var prefix = dom.id + '_';

  var panel = document.createElement('div');
  panel.id = panelId;
  panel.style.cssText='border:1px solid #ddd;border-radius:8px;padding:10px;margin:10px 0;background:#fafafa;';
  var title = document.createElement('div');
  title.innerHTML = '<b>Filter</b> &middot; drag to keep only merit &le; value';
  title.style.cssText='font:14px/1.3 sans-serif;margin-bottom:6px;';
  panel.appendChild(title);

  var label = document.createElement('span');
  label.id = prefix + 'lbl_merit';
  label.textContent = meritRange[1];
  var slider = document.createElement('input');
  slider.type = 'range';
  slider.min = meritRange[0];
  slider.max = meritRange[1];
  slider.step = (meritRange[1]-meritRange[0])/200 || 1;
  slider.value = meritRange[1];
  slider.style.width = '80%';
  panel.appendChild(slider);
  panel.appendChild(label);

  var stats = document.createElement('div');
  stats.style.cssText='font:12px sans-serif;opacity:.8;margin-top:6px;';
  panel.appendChild(stats);

  var parent = dom.parentNode;
  if(!parent) return;
  parent.insertBefore(panel, dom);

  function apply(){
    var threshold = +slider.value;
    label.textContent = threshold.toFixed(4);
    var kept = 0;
    var newSeries = series.map(function(s){
      var filtered = unwrap(s.data).filter(function(v){ return v[1] <= threshold; });
      kept += filtered.length;
      return { data: filtered.map(function(v){ return {value: v}; }) };
    });
    chart.setOption({ series: newSeries });
    stats.textContent = 'Showing ' + kept + ' points.';
  }
  slider.addEventListener('input', apply);
  apply();
})();`
	sc.AddJSFuncs(js)
}

func resolveSweepPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty input path")
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	var candidates []string
	switch filepath.Ext(path) {
	case ".jsonl":
		candidates = append(candidates, path[:len(path)-1])
	case ".json":
		candidates = append(candidates, path+"l")
	case "":
		candidates = append(candidates, path+".jsonl", path+".json")
	default:
		base := path[:len(path)-len(filepath.Ext(path))]
		candidates = append(candidates, base+".jsonl", base+".json")
	}

	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		if _, err := os.Stat(cand); err == nil {
			return cand, nil
		}
	}

	return "", fmt.Errorf("unable to find sweep input at %s", path)
}

func readSweepRows(path string) ([]sweepRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input %s is empty", path)
	}

	var rows []sweepRow
	if trimmed[0] == '[' {
		rows, err = decodeSweepArray(trimmed)
	} else {
		rows, err = decodeSweepJSONL(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid sweep rows found in %s", path)
	}
	return rows, nil
}

func decodeSweepArray(data []byte) ([]sweepRow, error) {
	var rowsRaw []sweepRow
	if err := json.Unmarshal(data, &rowsRaw); err != nil {
		return nil, err
	}
	rows := make([]sweepRow, 0, len(rowsRaw))
	for _, row := range rowsRaw {
		if isRowValid(row) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func decodeSweepJSONL(data []byte) ([]sweepRow, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64<<10), 4<<20)
	var rows []sweepRow
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var row sweepRow
		if err := json.Unmarshal(line, &row); err != nil {
			continue
		}
		if isRowValid(row) {
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func isRowValid(r sweepRow) bool {
	return r.Kind != "" && r.Construction != "" && !math.IsNaN(r.Merit)
}
