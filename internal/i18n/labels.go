package i18n

import (
	"fmt"
	"time"
)

// Labels holds every user-visible string of one language
type Labels struct {
	Language Language

	// CSV header, seven columns
	CSVHeader []string
	// PDF table header, seven columns
	PDFHeader []string

	PDFTitle     string
	GeneratedOn  string
	TotalLabel   string
	HoursSuffix  string
	CSVPrefix    string
	PDFPrefix    string
	EntriesTitle string
	TotalWorked  string
	HoursWord    string
	Running      string
	BreakLabel   string
	WorkedLabel  string
	MinutesShort string
	BreakWord    string

	// status and dashboard
	Idle         string
	Working      string
	OnBreakSince string
	StartedAt    string
	TodayTotal   string
	StartWork    string
	StopWork     string
	StartBreak   string
	EndBreak     string
	Quit         string

	// feedback
	NothingToExport string
	Exported        string
	NoSession       string
	Saved           string
	Deleted         string
	Imported        string
	NoEntries       string
	Required        string

	Weekdays [7]string
	Months   [12]string
}

var german = Labels{
	Language:     German,
	CSVHeader:    []string{"Datum", "Start", "Ende", "Pausen (Min)", "Projekt", "Notizen", "Arbeitszeit (Std)"},
	PDFHeader:    []string{"Datum", "Start", "Ende", "Pause (Min)", "Projekt", "Notizen", "Arbeitszeit"},
	PDFTitle:     "Arbeitszeitnachweis",
	GeneratedOn:  "Export vom:",
	TotalLabel:   "Gesamtzeit:",
	HoursSuffix:  "h",
	CSVPrefix:    "Arbeitszeiten",
	PDFPrefix:    "Arbeitszeitnachweis",
	EntriesTitle: "Einträge",
	TotalWorked:  "Gesamtarbeitszeit:",
	HoursWord:    "Stunden",
	Running:      "läuft",
	BreakLabel:   "Pause:",
	WorkedLabel:  "Arbeitszeit:",
	MinutesShort: "Min.",
	BreakWord:    "Pause",

	Idle:         "Nicht bei der Arbeit",
	Working:      "Arbeitszeit:",
	OnBreakSince: "Pausiert seit",
	StartedAt:    "Beginn:",
	TodayTotal:   "Heute:",
	StartWork:    "Arbeitsbeginn",
	StopWork:     "Arbeitsende",
	StartBreak:   "Pause starten",
	EndBreak:     "Pause beenden",
	Quit:         "Beenden",

	NothingToExport: "Keine Einträge zum Exportieren.",
	Exported:        "Exportiert nach",
	NoSession:       "Keine laufende Arbeitszeit.",
	Saved:           "Eintrag gespeichert:",
	Deleted:         "Eintrag gelöscht:",
	Imported:        "Einträge importiert:",
	NoEntries:       "Keine Einträge vorhanden.",
	Required:        "ist erforderlich",

	Weekdays: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	Months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
}

var english = Labels{
	Language:     English,
	CSVHeader:    []string{"Date", "Start", "End", "Breaks (min)", "Project", "Notes", "Worked (h)"},
	PDFHeader:    []string{"Date", "Start", "End", "Break (min)", "Project", "Notes", "Worked"},
	PDFTitle:     "Timesheet",
	GeneratedOn:  "Exported on:",
	TotalLabel:   "Total:",
	HoursSuffix:  "h",
	CSVPrefix:    "WorkingHours",
	PDFPrefix:    "Timesheet",
	EntriesTitle: "Entries",
	TotalWorked:  "Total worked:",
	HoursWord:    "hours",
	Running:      "running",
	BreakLabel:   "Break:",
	WorkedLabel:  "Worked:",
	MinutesShort: "min",
	BreakWord:    "break",

	Idle:         "Not working",
	Working:      "Worked:",
	OnBreakSince: "On break since",
	StartedAt:    "Started:",
	TodayTotal:   "Today:",
	StartWork:    "Start work",
	StopWork:     "Stop work",
	StartBreak:   "Start break",
	EndBreak:     "End break",
	Quit:         "Quit",

	NothingToExport: "No entries to export.",
	Exported:        "Exported to",
	NoSession:       "No work session is running.",
	Saved:           "Entry saved:",
	Deleted:         "Entry deleted:",
	Imported:        "Entries imported:",
	NoEntries:       "No entries yet.",
	Required:        "is required",

	Weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
}

// For returns a copy of the labels of l
func For(l Language) Labels {
	var labels Labels
	if l == English {
		labels = english
	} else {
		labels = german
	}
	labels.CSVHeader = append([]string(nil), labels.CSVHeader...)
	labels.PDFHeader = append([]string(nil), labels.PDFHeader...)
	return labels
}

// LongDate formats t as "Montag, 04. März 2024" or "Monday, 04 March 2024"
func (l Labels) LongDate(t time.Time) string {
	weekday := l.Weekdays[t.Weekday()]
	month := l.Months[t.Month()-1]
	if l.Language == English {
		return fmt.Sprintf("%s, %02d %s %d", weekday, t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s, %02d. %s %d", weekday, t.Day(), month, t.Year())
}

// Duration formats worked hours as "7h 30min"
func (l Labels) Duration(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	h := int(hours)
	m := int((hours-float64(h))*60 + 0.5)
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}
