package news

import "strings"

// categoryRule binds a category label to its trigger keywords.
type categoryRule struct {
	Category string
	Keywords []string
}

// categoryRules is scanned top to bottom; the first rule with any keyword
// present wins. The order encodes business priority: an AriBio mention must
// outrank the broad regulatory keywords even when both match. Do not reorder.
var categoryRules = []categoryRule{
	{
		Category: "aribio",
		Keywords: []string{
			"아리바이오",
			"aribio",
			"ar1001",
			"ar-1001",
		},
	},
	{
		Category: "regulation",
		Keywords: []string{
			"fda", "ema", "식약처", "cms",
			"보험 급여", "보험급여", "medicare", "medicaid",
			"승인", "허가", "approval", "approved", "clearance",
			"fast track", "신속 심사", "breakthrough therapy",
			"가이드라인", "guideline",
			"규제", "regulation", "regulatory", "reimbursement",
		},
	},
	{
		Category: "competition",
		Keywords: []string{
			// approved / late-stage drugs
			"에자이", "eisai", "레켐비", "leqembi", "레카네맙", "lecanemab",
			"일라이 릴리", "eli lilly", "키선라", "kisunla", "도나네맙", "donanemab",
			"바이오젠", "biogen", "아두카누맙", "aducanumab", "aduhelm",
			"로슈", "roche",
			// candidates in FDA trials
			"remternetug", "렘터네투맙",
			"trontinemab", "트론티네맙",
			"gantenerumab", "간테네루맙",
			"solanezumab", "솔라네주맙",
			"simufilam", "시뮤필람", "cassava sciences", "카사바",
			"alz-801", "valiltramiprosate", "알제온", "alzheon",
			"buntanetap", "분타네탑", "posiphen", "annovis bio", "어노비스",
			"tbp-pi-het", "tb006", "truebinding",
			"masitinib", "마시티닙", "ab science",
			"aci-24", "ac immune",
			"ub-311", "united biomedical",
			"semaglutide", "세마글루타이드", "novo nordisk", "노보노디스크",
			"tirzepatide", "티르제파타이드",
			"brexpiprazole", "rexulti", "렉술티", "otsuka", "lundbeck",
			// generic competition terms
			"경쟁", "competitor", "rival", "pipeline",
		},
	},
	{
		Category: "market",
		Keywords: []string{
			"시장", "market", "매출", "revenue", "sales",
			"투자", "investment", "m&a", "인수", "합병",
			"acquisition", "merger", "ipo", "주가", "stock",
			"바이오 섹터", "billion", "달러", "펀딩", "funding",
			"venture", "valuation",
		},
	},
	{
		Category: "research",
		Keywords: []string{
			"연구", "research", "study",
			"아밀로이드", "amyloid", "타우", "tau",
			"trem2", "pde5",
			"임상", "clinical", "phase",
			"논문", "paper", "journal",
			"발견", "discovery", "메커니즘", "mechanism",
			"바이오마커", "biomarker", "p-tau",
			"신경", "neuro", "병리", "pathology",
		},
	},
}

const defaultCategory = "research"

// Categorize assigns one of the fixed category labels from title and
// description via case-insensitive substring matching against categoryRules.
func Categorize(title, description string) string {
	text := strings.ToLower(title + " " + description)

	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}

	return defaultCategory
}
