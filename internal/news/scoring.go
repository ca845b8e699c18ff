package news

import (
	"strings"
	"sync"
)

// scoringRule assigns a weight to a keyword group. Unlike categorization,
// scoring takes the maximum weight across all matching rules.
type scoringRule struct {
	Keywords []string
	Weight   int
}

// Weighted from the AriBio investor perspective.
var scoringRules = []scoringRule{
	// 10: directly AriBio-related
	{[]string{"아리바이오", "aribio", "ar1001", "ar-1001"}, 10},

	// 8-9: core competitors, FDA/EMA regulatory events
	{[]string{"fda 승인", "fda approved", "fda approval", "fda clearance"}, 9},
	{[]string{"ema 승인", "ema approved", "ema approval"}, 9},
	{[]string{"식약처 승인", "식약처 허가"}, 9},
	{[]string{"cms", "medicare", "보험 급여", "보험급여", "reimbursement"}, 9},
	{[]string{"phase 3", "phase iii", "3상", "pivotal trial"}, 8},
	{[]string{"lecanemab", "레카네맙", "donanemab", "도나네맙", "aducanumab", "아두카누맙"}, 8},
	{[]string{"kisunla", "키선라", "leqembi", "레켐비"}, 8},
	{[]string{"remternetug", "렘터네투맙", "trontinemab", "트론티네맙"}, 8},
	{[]string{"simufilam", "시뮤필람", "cassava sciences"}, 7},
	{[]string{"alz-801", "valiltramiprosate", "alzheon", "알제온"}, 7},
	{[]string{"buntanetap", "분타네탑", "annovis bio"}, 7},
	{[]string{"semaglutide", "세마글루타이드", "novo nordisk", "노보노디스크"}, 7},
	{[]string{"tirzepatide", "티르제파타이드"}, 7},
	{[]string{"masitinib", "마시티닙", "ab science"}, 7},
	{[]string{"brexpiprazole", "rexulti", "렉술티"}, 6},
	{[]string{"aci-24", "ac immune", "ub-311"}, 6},
	{[]string{"인수합병", "m&a", "acquisition", "buyout", "merger"}, 8},

	// 6-7: trials, regulation, competitor pipelines
	{[]string{"phase 2", "phase ii", "2상"}, 7},
	{[]string{"fast track", "breakthrough therapy", "신속 심사", "혁신 신약"}, 7},
	{[]string{"trem2", "pde5"}, 7},
	{[]string{"clinical trial", "임상시험", "임상 결과"}, 7},
	{[]string{"biogen", "바이오젠", "eisai", "에자이", "eli lilly", "일라이 릴리", "roche", "로슈", "otsuka", "lundbeck"}, 7},
	{[]string{"anti-amyloid", "항아밀로이드", "anti-tau", "항타우"}, 6},
	{[]string{"bace inhibitor", "bace 억제"}, 6},
	{[]string{"pipeline", "파이프라인"}, 6},
	{[]string{"market forecast", "시장 전망", "시장 규모"}, 6},

	// 5: biomarkers, industry signals
	{[]string{"biomarker", "바이오마커", "p-tau", "ptau"}, 5},
	{[]string{"amyloid", "아밀로이드"}, 5},
	{[]string{"tau protein", "타우 단백질", "타우 병리"}, 5},
	{[]string{"blood test", "혈액 검사", "혈액 진단"}, 5},
	{[]string{"neuroinflammation", "신경염증"}, 5},
	{[]string{"ipo", "주가", "stock price", "매출", "revenue"}, 5},

	// 3-4: general research
	{[]string{"alzheimer", "알츠하이머"}, 3},
	{[]string{"dementia", "치매"}, 3},
	{[]string{"cognitive decline", "인지기능 저하", "인지 저하"}, 4},
	{[]string{"neurodegeneration", "신경퇴행"}, 3},
}

// descriptionScoreLimit caps how much of the description is scanned, both for
// speed and so long bodies do not over-weight.
const descriptionScoreLimit = 200

// ComputeScore returns an importance score in [1,10]: the maximum weight of
// all matching rules, 1 if nothing matches.
func ComputeScore(title, description string) int {
	desc := []rune(description)
	if len(desc) > descriptionScoreLimit {
		desc = desc[:descriptionScoreLimit]
	}
	text := strings.ToLower(title + " " + string(desc))

	maxScore := 1
	for _, rule := range scoringRules {
		if rule.Weight <= maxScore {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				maxScore = rule.Weight
				break
			}
		}
	}

	return maxScore
}

// Scorer caches computed scores per normalized URL for the process lifetime,
// so identical URLs are never rescored within one process.
type Scorer struct {
	mu    sync.Mutex
	cache map[string]int
}

func NewScorer() *Scorer {
	return &Scorer{cache: make(map[string]int)}
}

// ScoreAll fills Importance on every article, consulting the cache first.
func (s *Scorer) ScoreAll(articles []Article) []Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range articles {
		key := NormalizeURL(articles[i].URL)
		if cached, ok := s.cache[key]; ok {
			articles[i].Importance = cached
			continue
		}
		score := ComputeScore(articles[i].Title, articles[i].Description)
		s.cache[key] = score
		articles[i].Importance = score
	}
	return articles
}

// Clear empties the score cache. Idempotent; called by the scheduler so that
// rule changes take effect without a restart.
func (s *Scorer) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]int)
}
