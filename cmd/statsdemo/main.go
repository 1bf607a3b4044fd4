package main

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/HailongWen/gostats/measure"
	"github.com/HailongWen/gostats/view"
)

// export is the JSON-friendly shape a view.Data row set is rendered as;
// view.Data itself has no marshaling method since its tagged-union
// storage and sharded maps are an implementation detail, not a wire
// format.
type export struct {
	Measure   string             `json:"measure"`
	StartTime time.Time          `json:"start_time"`
	EndTime   time.Time          `json:"end_time"`
	Sums      map[string]float64 `json:"sums,omitempty"`
}

func main() {
	latency := measure.RegisterDouble("demo/latency", "ms", "request latency")
	fmt.Println("registered measure:", measure.Default.Descriptor(latency))

	now := time.Now()

	requests := view.New(now, view.Descriptor{
		Aggregation: view.SumAggregation(),
		Window:      view.IntervalWindow(time.Minute),
	})

	routes := []string{"/users", "/orders", "/users"}
	for i, route := range routes {
		requests.Add(float64(10+i), []string{route}, now.Add(time.Duration(i)*time.Second))
	}

	snap, err := view.Snapshot(requests, now.Add(5*time.Second))
	if err != nil {
		fmt.Println("snapshot failed:", err)
		return
	}

	out := export{
		Measure:   "demo/latency",
		StartTime: snap.StartTime,
		EndTime:   snap.EndTime,
		Sums:      make(map[string]float64),
	}

	for _, route := range routes {
		out.Sums[route] = snap.DoubleData()[view.NewTagKey([]string{route})]
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Println("encode failed:", err)
		return
	}

	fmt.Println(string(encoded))
}
