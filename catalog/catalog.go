// Package catalog holds the static TUKLAS program catalog: the four
// training programs, their per-level curricula, pricing and credit tables,
// and the session title pools used by the schedule generator.
package catalog

import "strings"

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// Levels in display order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelExpert}

type Curriculum struct {
	Days   int      `json:"days"`
	Topics []string `json:"topics"`
}

type Program struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Overview    string                `json:"overview"`
	Outcomes    []string              `json:"outcomes"`
	Curricula   map[Level]Curriculum  `json:"curricula"`
	MeetingLink string                `json:"meeting_link"`
}

const genericMeetingLink = "https://teams.microsoft.com"

// DefaultLocation is where every generated session takes place.
const DefaultLocation = "Microsoft Teams"

var levelDays = map[Level]int{
	LevelBeginner:     7,
	LevelIntermediate: 10,
	LevelExpert:       14,
}

var levelPrice = map[Level]int{
	LevelBeginner:     3000,
	LevelIntermediate: 7000,
	LevelExpert:       12000,
}

var levelCredits = map[Level]int{
	LevelBeginner:     1,
	LevelIntermediate: 3,
	LevelExpert:       5,
}

var programs = []Program{
	{
		ID:    "vdaa",
		Title: "Virtual Data Analysis Assistant Training Program",
		Overview: "Hands-on training for virtual assistants who analyze data, " +
			"build dashboards, and present business insights.",
		Outcomes: []string{
			"Spreadsheet & SQL fundamentals",
			"Cleaning & visualization best practices",
			"KPI dashboards and simple forecasts",
		},
		Curricula: map[Level]Curriculum{
			LevelBeginner: {Days: 7, Topics: []string{
				"Introduction to Data Analytics",
				"Spreadsheet Proficiency",
				"Data Sorting, Filtering, and Graphs",
				"Data Accuracy and Validation",
				"Introduction to Google Sheets and Excel",
			}},
			LevelIntermediate: {Days: 10, Topics: []string{
				"Data Cleaning and Preparation",
				"Pivot Tables and Basic Statistics",
				"Creating Dashboards",
				"Trend and Pattern Analysis",
				"Visual Data Presentation",
			}},
			LevelExpert: {Days: 14, Topics: []string{
				"Advanced Data Tools (Power BI, Tableau Intro)",
				"Automating Reports for Insights",
				"Interpreting Data for Decision Support",
				"Managing Large Data Sets",
			}},
		},
		MeetingLink: genericMeetingLink,
	},
	{
		ID:    "vadmin",
		Title: "Virtual Administrative Assistant Training Program",
		Overview: "Operational excellence for modern remote admins: calendar " +
			"mastery, documentation, and process automation.",
		Outcomes: []string{
			"Email, calendar, and file systems",
			"SOP writing & documentation",
			"Automation with forms and spreadsheets",
		},
		Curricula: map[Level]Curriculum{
			LevelBeginner: {Days: 7, Topics: []string{
				"Understanding VA Administrative Roles",
				"Email Management and Scheduling Tools",
				"Document Organization (Google Workspace, MS Office)",
				"Calendar Management and Task Prioritization",
				"Online Meeting Setup (Zoom, Teams)",
			}},
			LevelIntermediate: {Days: 10, Topics: []string{
				"Workflow and Process Management",
				"Handling Client Communication",
				"Recordkeeping and Digital Filing Systems",
				"Managing Deadlines and Tasks",
				"Problem Solving and Critical Thinking",
			}},
			LevelExpert: {Days: 14, Topics: []string{
				"Project Coordination and Team Support",
				"Business Correspondence and Report Writing",
				"CRM Tools and Data Entry Accuracy",
				"Process Improvement for Admin Efficiency",
			}},
		},
		MeetingLink: genericMeetingLink,
	},
	{
		ID:    "veditorial",
		Title: "Virtual Editorial Assistant Training Program",
		Overview: "Editing workflow from research to publish. Learn briefs, " +
			"style guides, CMS use, and basic graphics.",
		Outcomes: []string{
			"Content research & outlines",
			"Editing with style guides",
			"CMS publishing & basic graphics",
		},
		Curricula: map[Level]Curriculum{
			LevelBeginner: {Days: 7, Topics: []string{
				"Introduction to Editorial Work",
				"Grammar, Spelling, and Punctuation Essentials",
				"Formatting Articles and Documents",
				"Basic Research and Fact-Checking",
				"Using Editing Tools (Grammarly, Hemingway)",
			}},
			LevelIntermediate: {Days: 10, Topics: []string{
				"Copyediting and Proofreading Techniques",
				"Style Guide Application (APA, MLA, Chicago)",
				"Collaborative Editing in Google Docs",
				"Managing Editorial Calendars",
				"Consistency and Tone Checks",
			}},
			LevelExpert: {Days: 14, Topics: []string{
				"Advanced Editing and Rewriting Skills",
				"SEO Writing and Content Optimization",
				"Managing Editorial Projects",
				"Handling Multiple Writers",
			}},
		},
		MeetingLink: genericMeetingLink,
	},
	{
		ID:    "vmarketing",
		Title: "Virtual Marketing Assistant Training Program",
		Overview: "Campaign support for social, email, and ads. Build " +
			"calendars, drafts, and reports that convert.",
		Outcomes: []string{
			"Social calendar & asset prep",
			"Email drafts & simple automations",
			"Campaign tracking & weekly reports",
		},
		Curricula: map[Level]Curriculum{
			LevelBeginner: {Days: 7, Topics: []string{
				"Introduction to Digital Marketing",
				"Social Media Platforms Overview",
				"Content Scheduling Tools",
				"Basic Canva and Design Skills",
				"Audience Engagement Basics",
			}},
			LevelIntermediate: {Days: 10, Topics: []string{
				"Social Media Analytics",
				"Copywriting for Marketing",
				"Email Campaign Management",
				"SEO Basics and Keyword Use",
				"Branding and Consistency",
			}},
			LevelExpert: {Days: 14, Topics: []string{
				"Strategic Campaign Planning",
				"Paid Ads Management",
				"Marketing Reports and KPIs",
				"Influencer and Partner Collaboration",
			}},
		},
		MeetingLink: genericMeetingLink,
	},
}

var titlePool = map[string]map[Level][]string{
	"vdaa": {
		LevelBeginner: {
			"Intro to Analytics • Day", "Spreadsheets Sprint • Day", "Charts & Filters • Day",
			"Data Accuracy Lab • Day", "Sheets & Excel Jumpstart • Day", "Mini Dashboard Practice • Day", "QA & Recap • Day",
		},
		LevelIntermediate: {
			"Data Cleaning Lab • Day", "Pivot Tables Power • Day", "Stats Basics • Day", "Dashboard Build • Day",
			"Trends & Patterns • Day", "Viz Storytelling • Day", "Review & Q&A • Day", "Practice Clinic • Day",
			"Case Study • Day", "Midterm Build • Day",
		},
		LevelExpert: {
			"Power BI / Tableau Intro • Day", "Automation for Insights • Day", "Decision Support • Day", "Large Dataset Skills • Day",
			"Advanced Modeling • Day", "Performance Tuning • Day", "Dashboard Polish • Day", "Final Lab • Day",
			"Capstone Review • Day", "Exec Storytelling • Day", "Data Ops Tips • Day", "Masterclass • Day", "Case Defense • Day", "Wrap-up & Cert • Day",
		},
	},
	"vadmin": {
		LevelBeginner: {
			"Admin Roles 101 • Day", "Email Mastery • Day", "Docs & Files • Day", "Calendars & Tasks • Day",
			"Meetings Setup • Day", "Toolbox Time • Day", "Recap • Day",
		},
		LevelIntermediate: {
			"Workflow Design • Day", "Client Comms • Day", "Records Mgmt • Day", "Deadlines Control • Day",
			"Problem Solving • Day", "Process QA • Day", "Ops Clinic • Day", "Docs Review • Day", "Playbook Build • Day", "Retro • Day",
		},
		LevelExpert: {
			"Project Coordination • Day", "Reports Writing • Day", "CRM & Data • Day", "Process Improvement • Day",
			"Stakeholder Sync • Day", "Automation • Day", "Admin Systematize • Day", "Ops Scaling • Day",
			"Leadership Support • Day", "Final Review • Day", "Handoff • Day", "Capstone • Day", "Mastery • Day", "Graduation • Day",
		},
	},
	"veditorial": {
		LevelBeginner: {
			"Editorial Basics • Day", "Grammar Essentials • Day", "Formatting • Day", "Fact-Checking • Day",
			"Editing Tools • Day", "Style Drill • Day", "Wrap-Up • Day",
		},
		LevelIntermediate: {
			"Copyedit Lab • Day", "Style Guides • Day", "Collab Docs • Day", "Editorial Calendar • Day",
			"Consistency Checks • Day", "Peer Review • Day", "Workflow Clinic • Day", "Rewrite Skills • Day", "Quality Gate • Day", "Retro • Day",
		},
		LevelExpert: {
			"Advanced Editing • Day", "SEO Writing • Day", "Project Mgmt • Day", "Multi-Writer Handling • Day",
			"Editorial Strategy • Day", "Analytics for Editors • Day", "Voice & Tone • Day", "Longform Clinic • Day",
			"Publication Day • Day", "Postmortem • Day", "Toolkit • Day", "Coaching • Day", "Capstone • Day", "Comm Debrief • Day",
		},
	},
	"vmarketing": {
		LevelBeginner: {
			"Digital Marketing Intro • Day", "Platforms Tour • Day", "Scheduling Tools • Day", "Canva Basics • Day",
			"Engagement 101 • Day", "Copy Starter • Day", "Wrap-Up • Day",
		},
		LevelIntermediate: {
			"Analytics Basics • Day", "Copywriting • Day", "Email Campaigns • Day", "SEO Basics • Day",
			"Brand Consistency • Day", "Content Ops • Day", "Performance Review • Day", "A/B Ideas • Day", "Reporting • Day", "Retro • Day",
		},
		LevelExpert: {
			"Campaign Strategy • Day", "Paid Ads • Day", "KPI Deep Dive • Day", "Influencer Collab • Day",
			"Funnel Optimization • Day", "Attribution • Day", "Advanced Reporting • Day", "Growth Loops • Day",
			"Creative Review • Day", "Ops Scaling • Day", "Quarter Plan • Day", "Pitch Prep • Day", "Capstone • Day", "Summit • Day",
		},
	},
}

// fallbackTitles is used when a program/level has no pool entry.
var fallbackTitles = []string{"Training Session • Day"}

// Programs returns the full catalog in display order.
func Programs() []Program {
	return programs
}

// ProgramByID returns the program with the given id.
func ProgramByID(id string) (Program, bool) {
	for _, p := range programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

// ValidProgramID reports whether id names a known program.
func ValidProgramID(id string) bool {
	_, ok := ProgramByID(id)
	return ok
}

// ValidLevel reports whether l is one of the three known levels.
func ValidLevel(l Level) bool {
	_, ok := levelDays[l]
	return ok
}

// Days returns the number of training days for a level. Unknown levels fall
// back to the beginner length so derived schedules never end up empty.
func Days(l Level) int {
	if d, ok := levelDays[l]; ok {
		return d
	}
	return levelDays[LevelBeginner]
}

// Price returns the enrollment fee in PHP for a level.
func Price(l Level) int {
	if p, ok := levelPrice[l]; ok {
		return p
	}
	return levelPrice[LevelBeginner]
}

// Credits returns the credits awarded on approval for a level.
func Credits(l Level) int {
	if c, ok := levelCredits[l]; ok {
		return c
	}
	return levelCredits[LevelBeginner]
}

// Titles returns the session title pool for a program/level, never empty.
func Titles(programID string, l Level) []string {
	if byLevel, ok := titlePool[programID]; ok {
		if titles, ok := byLevel[l]; ok && len(titles) > 0 {
			return titles
		}
	}
	return fallbackTitles
}

// MeetingLink returns the join URL for a program's sessions.
func MeetingLink(programID string) string {
	if p, ok := ProgramByID(programID); ok && p.MeetingLink != "" {
		return p.MeetingLink
	}
	return genericMeetingLink
}

// NormalizeProgramID maps free-form program references (ids, titles, legacy
// slugs) onto a canonical program id.
func NormalizeProgramID(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if ValidProgramID(s) {
		return s
	}
	switch {
	case strings.Contains(s, "data"):
		return "vdaa"
	case strings.Contains(s, "admin"):
		return "vadmin"
	case strings.Contains(s, "editor"):
		return "veditorial"
	case strings.Contains(s, "market"):
		return "vmarketing"
	}
	return "vdaa"
}

// NormalizeLevel maps free-form level references onto a canonical level.
func NormalizeLevel(raw string) Level {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "beg"):
		return LevelBeginner
	case strings.HasPrefix(s, "int"):
		return LevelIntermediate
	case strings.HasPrefix(s, "exp"):
		return LevelExpert
	}
	return LevelBeginner
}
