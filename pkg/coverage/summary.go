package coverage

import "github.com/matzehuels/signaltower/pkg/city"

// Summary describes the signal state of a grid after towers were placed.
type Summary struct {
	Cells   int `json:"cells"`
	Blocked int `json:"blocked"`
	Signal  int `json:"signal"`
	Towers  int `json:"towers"`
	Empty   int `json:"empty"`
	// Ratio is Signal / (Cells - Blocked - Towers), the share of open
	// ground that receives a signal. It is 0 when there is no open ground.
	Ratio float64 `json:"ratio"`
}

// Summarize counts the cell states of g.
func Summarize(g *city.Grid) Summary {
	s := Summary{
		Cells:   g.Size(),
		Blocked: g.Count(city.Blocked),
		Signal:  g.Count(city.Signal),
		Towers:  g.Count(city.Tower),
		Empty:   g.Count(city.Empty),
	}
	if open := s.Signal + s.Empty; open > 0 {
		s.Ratio = float64(s.Signal) / float64(open)
	}
	return s
}
