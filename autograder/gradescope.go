package autograder

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
)

// ResultsPath is where Gradescope collects the results of a run.
const ResultsPath = "results/results.json"

type GradescopeTest struct {
	Name       string `json:"name"`
	MaxScore   int    `json:"max_score"`
	Score      int    `json:"score"`
	Output     string `json:"output"`
	Visibility string `json:"visibility"`
	Status     string `json:"status,omitempty"`
}

type GradescopeLeaderBoardEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Order string `json:"order,omitempty"`
}

type GradescopeOutput struct {
	Tests           []GradescopeTest             `json:"tests"`
	LeaderboardData []GradescopeLeaderBoardEntry `json:"leaderboard"`
}

func CreateGradescopeOutput() *GradescopeOutput {
	return &GradescopeOutput{
		Tests:           []GradescopeTest{},
		LeaderboardData: []GradescopeLeaderBoardEntry{},
	}
}

func (gso *GradescopeOutput) AddTest(test GradescopeTest, score int) {
	test.Score = score
	gso.Tests = append(gso.Tests, test)
}

func (gso *GradescopeOutput) AddLeaderBoardEntry(entry GradescopeLeaderBoardEntry) {
	gso.LeaderboardData = append(gso.LeaderboardData, entry)
}

// Score is the total over all tests.
func (gso *GradescopeOutput) Score() int {
	total := 0
	for _, test := range gso.Tests {
		total += test.Score
	}
	return total
}

// Save writes the results to ResultsPath.
func (gso *GradescopeOutput) Save() error {
	return gso.SaveTo(ResultsPath)
}

func (gso *GradescopeOutput) SaveTo(path string) error {
	b, err := json.Marshal(gso)
	if err != nil {
		return xerrors.Errorf("encoding results: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return xerrors.Errorf("creating results directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return xerrors.Errorf("writing results: %w", err)
	}
	return nil
}

func CreateTestCase(name string, maxScore int, visibility string) GradescopeTest {
	return GradescopeTest{
		Name:       name,
		MaxScore:   maxScore,
		Visibility: visibility,
	}
}

func (gt *GradescopeTest) SetStatus(success bool) {
	if success {
		gt.Status = "passed"
	} else {
		gt.Status = "failed"
	}
}

func (gt *GradescopeTest) OutputPrintLn(str string) {
	gt.Output += str + "\n"
}
