package assembler

// LineInfo is the assembled record of one source line.
type LineInfo struct {
	Text    string       `json:"text"`
	Number  int          `json:"number"` // 1-based source line number
	Type    LineType     `json:"type"`
	Address int          `json:"address"` // offset within Segment where the line's bytes start
	Segment string       `json:"segment"`
	Code    OpCode       `json:"-"`
	OpCode  string       `json:"opCode"` // listing form of Code
	Size    int          `json:"size"`
	Correct bool         `json:"correct"`
	Reason  string       `json:"reason,omitempty"` // why the line is incorrect
	Assume  *AssumeTable `json:"assume,omitempty"` // assume state after an ASSUME line
}

// Bytes returns the machine code of the line.
func (l LineInfo) Bytes() []byte {
	return l.Code.Bytes()
}

func (l *LineInfo) setCode(code OpCode) {
	l.Code = code
	l.OpCode = code.String()
	l.Size = code.Size()
}

type AssembledResult struct {
	Lines        []LineInfo   // final listing records, after pass two
	FirstPass    []LineInfo   // records as produced by pass one
	Segments     []SegInfo    // segment table in declaration order
	Identifiers  []IdInfo     // identifier table in declaration order
	ErrorLines   []int        // 1-based line numbers, in the order the errors were found
	Diagnostics  []Diagnostic // errors and warnings with source ranges
	fileContents []string     // each line of the file
}

// ErrorCount is the number of entries in the error list.
func (a *AssembledResult) ErrorCount() int {
	return len(a.ErrorLines)
}

// Identifier finds an identifier by name, ignoring case.
func (a *AssembledResult) Identifier(name string) (IdInfo, bool) {
	for _, id := range a.Identifiers {
		if tableKey(id.Name) == tableKey(name) {
			return id, true
		}
	}
	return IdInfo{}, false
}

// Segment finds a segment by name, ignoring case.
func (a *AssembledResult) Segment(name string) (SegInfo, bool) {
	for _, seg := range a.Segments {
		if tableKey(seg.Name) == tableKey(name) {
			return seg, true
		}
	}
	return SegInfo{}, false
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
}
