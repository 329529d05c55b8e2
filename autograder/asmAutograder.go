package autograder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"github.gatech.edu/ECEInnovation/x86-Translator/assembler"
	"github.gatech.edu/ECEInnovation/x86-Translator/listing"
)

// maxReportedMismatches limits how many differing lines a test case prints.
const maxReportedMismatches = 5

// normalizeListing drops the header, trailing whitespace and trailing empty lines so that
// listings written on different machines compare equal.
func normalizeListing(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	// the header ends with the "Generated:" line
	for i := 0; i < len(lines) && i < 2; i++ {
		if strings.HasPrefix(lines[i], "Generated: ") {
			lines = lines[i+1:]
			break
		}
	}

	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// compareListings returns the number of differing lines and a report of the first few.
func compareListings(expected, submitted []string) (int, string) {
	builder := strings.Builder{}
	mismatches := 0
	for i := 0; i < len(expected) || i < len(submitted); i++ {
		exp, sub := "", ""
		if i < len(expected) {
			exp = expected[i]
		}
		if i < len(submitted) {
			sub = submitted[i]
		}
		if exp == sub {
			continue
		}
		mismatches++
		if mismatches <= maxReportedMismatches {
			builder.WriteString(fmt.Sprintf("line %d: expected %q, got %q\n", i+1, exp, sub))
		}
	}
	if mismatches > maxReportedMismatches {
		builder.WriteString(fmt.Sprintf("... and %d more differing lines\n", mismatches-maxReportedMismatches))
	}
	return mismatches, builder.String()
}

func referenceListing(assignmentCodeDir string, number int, opts listing.Options) ([]string, error) {
	path := filepath.Join(assignmentCodeDir, strconv.Itoa(number)+".asm")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading reference program: %w", err)
	}
	res := assembler.Assemble(string(b))
	return normalizeListing(strings.Join(listing.Render(res, opts), "\n")), nil
}

func submittedListingPath(studentCodePath string, number int) string {
	return filepath.Join(studentCodePath, strconv.Itoa(number)+".lst")
}

// asmAutogradeTestCase reports whether the submitted listing for a test case matches the
// reference translator's listing, with a description of the differences.
func asmAutogradeTestCase(c *Config, testCase TestCase, opts listing.Options) (bool, string, error) {
	expected, err := referenceListing(c.AssignmentCodeDir, testCase.Number, opts)
	if err != nil {
		return false, "", err
	}

	b, err := os.ReadFile(submittedListingPath(c.StudentCodePath, testCase.Number))
	if err != nil {
		return false, "Listing file " + strconv.Itoa(testCase.Number) + ".lst was not submitted.\n", nil
	}

	mismatches, report := compareListings(expected, normalizeListing(string(b)))
	if mismatches != 0 {
		return false, report, nil
	}
	return true, "", nil
}

// AutogradeAsmListings grades each submitted listing against the reference translator.
// Results are grouped by visibility, after a Format case that checks every listing was
// submitted.
func AutogradeAsmListings(c *Config) (*GradescopeOutput, error) {
	opts, err := listing.ParseOptions(c.ListingOptions)
	if err != nil {
		return nil, xerrors.Errorf("autograder listing options: %w", err)
	}

	gso := CreateGradescopeOutput()

	formatCase := CreateTestCase("Format", c.FormatPoints, "visible")
	missing := []string{}
	for _, testCase := range c.TestCases {
		if _, err := os.Stat(submittedListingPath(c.StudentCodePath, testCase.Number)); err != nil {
			missing = append(missing, strconv.Itoa(testCase.Number)+".lst")
		}
	}
	if len(missing) == 0 {
		formatCase.OutputPrintLn("All listing files were submitted.")
		formatCase.SetStatus(true)
		gso.AddTest(formatCase, c.FormatPoints)
	} else {
		formatCase.OutputPrintLn("Missing listing files: " + strings.Join(missing, ", "))
		formatCase.SetStatus(false)
		gso.AddTest(formatCase, 0)
	}

	type TCTypePair struct {
		correct      int
		total        int
		earnedPoints int
		totalPoints  int
		output       string
	}

	tcRes := make(map[string]TCTypePair) // key is the visibility of the test case

	for _, testCase := range c.TestCases {
		correct, report, err := asmAutogradeTestCase(c, testCase, opts)
		if err != nil {
			return nil, xerrors.Errorf("test case %d: %w", testCase.Number, err)
		}

		earnedPoints, passed, passFail := 0, 0, "\n[FAIL] "
		if correct {
			earnedPoints, passed, passFail = testCase.Points, 1, "[PASS] "
		}

		outputStr := passFail + "Test Case: " + testCase.Name + " (" + strconv.Itoa(testCase.Number) + ")\n"
		outputStr += report

		prev := tcRes[testCase.Visibility]
		tcRes[testCase.Visibility] = TCTypePair{
			correct:      prev.correct + passed,
			total:        prev.total + 1,
			earnedPoints: prev.earnedPoints + earnedPoints,
			totalPoints:  prev.totalPoints + testCase.Points,
			output:       prev.output + outputStr,
		}
	}

	visibilities := make([]string, 0, len(tcRes))
	for visibility := range tcRes {
		visibilities = append(visibilities, visibility)
	}
	sort.Strings(visibilities)

	// collating the results
	for _, visibility := range visibilities {
		res := tcRes[visibility]
		tcTypeStr := "Smoke Test Cases"
		if visibility != "visible" {
			tcTypeStr = "All Other Test Cases"
		}
		tc := CreateTestCase(tcTypeStr, res.totalPoints, visibility)
		tc.OutputPrintLn("Number Passed: " + strconv.Itoa(res.correct) + "/" + strconv.Itoa(res.total))
		tc.OutputPrintLn(res.output)
		tc.SetStatus(res.correct == res.total)
		gso.AddTest(tc, res.earnedPoints)
	}

	return gso, nil
}
