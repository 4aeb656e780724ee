package detect

// Band is a confirmed interference band, the arithmetic mean of all
// candidate bounds merged into one cluster.
type Band struct {
	LowHz  float64
	HighHz float64
}

// CenterHz returns the band midpoint.
func (b Band) CenterHz() float64 { return (b.LowHz + b.HighHz) / 2 }

// WidthHz returns the band width.
func (b Band) WidthHz() float64 {
	w := b.HighHz - b.LowHz
	if w < 0 {
		return -w
	}
	return w
}

// cluster accumulates candidate bounds; its running average is
// (sumLow/count, sumHigh/count).
type cluster struct {
	sumLow  float64
	sumHigh float64
	count   int
}

func (c *cluster) midpoint() float64 {
	return (c.sumLow + c.sumHigh) / (2 * float64(c.count))
}

// Clusterer merges candidates from all windows of a channel into
// running-average clusters and keeps only those with enough supporting
// detections. Merging is first-match on midpoint distance, so the
// output depends on candidate arrival order; callers must feed
// candidates in window-then-extraction order for reproducible results.
type Clusterer struct {
	marginHz    float64
	thresholdHz float64
	minSupport  int

	clusters []cluster
}

// NewClusterer creates a Clusterer. marginHz is added outward to both
// candidate bounds before merging, thresholdHz is the maximum midpoint
// distance for two detections to count as the same band, and minSupport
// is the detection count a cluster must exceed to be confirmed.
func NewClusterer(marginHz, thresholdHz float64, minSupport int) *Clusterer {
	return &Clusterer{
		marginHz:    marginHz,
		thresholdHz: thresholdHz,
		minSupport:  minSupport,
	}
}

// Add merges one candidate into the first cluster whose running-average
// midpoint is within the threshold, or starts a new cluster.
func (c *Clusterer) Add(cand Candidate) {
	low := cand.LowHz - c.marginHz
	high := cand.HighHz + c.marginHz
	mid := (low + high) / 2

	for i := range c.clusters {
		d := mid - c.clusters[i].midpoint()
		if d < 0 {
			d = -d
		}
		if d < c.thresholdHz {
			c.clusters[i].sumLow += low
			c.clusters[i].sumHigh += high
			c.clusters[i].count++
			return
		}
	}

	c.clusters = append(c.clusters, cluster{sumLow: low, sumHigh: high, count: 1})
}

// AddAll merges candidates in order.
func (c *Clusterer) AddAll(cands []Candidate) {
	for _, cand := range cands {
		c.Add(cand)
	}
}

// Bands returns the running averages of every cluster whose detection
// count exceeds the minimum support threshold, in cluster creation
// order.
func (c *Clusterer) Bands() []Band {
	var out []Band
	for i := range c.clusters {
		cl := &c.clusters[i]
		if cl.count > c.minSupport {
			n := float64(cl.count)
			out = append(out, Band{
				LowHz:  cl.sumLow / n,
				HighHz: cl.sumHigh / n,
			})
		}
	}
	return out
}
