package log

import (
	"bytes"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	indentField  = "indent"
	successField = "success"
	fatalField   = "fatal"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Formatter renders entries as indented lines with a coloured level prefix.
type Formatter struct {
	Colors bool
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	message := strings.TrimSuffix(e.Message, "\n")

	if _, fatal := e.Data[fatalField]; fatal {
		b.WriteString(f.paint(colorRed, message))
		b.WriteByte('\n')
		return b.Bytes(), nil
	}

	if indent, ok := e.Data[indentField].(int); ok && indent > 0 {
		b.WriteString(strings.Repeat("  ", indent))
	}

	switch {
	case e.Level == logrus.DebugLevel || e.Level == logrus.TraceLevel:
		b.WriteString(f.paint(colorCyan, "Debug: "))
	case e.Level == logrus.WarnLevel:
		b.WriteString(f.paint(colorYellow, "Warning: "))
	case e.Level <= logrus.ErrorLevel:
		b.WriteString(f.paint(colorRed, "Error: "))
	case e.Data[successField] == true:
		b.WriteString(f.paint(colorGreen, "Success: "))
	}

	b.WriteString(message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *Formatter) paint(color, s string) string {
	if !f.Colors {
		return s
	}
	return color + s + colorReset
}
