package news

import "time"

// FallbackArticles returns a built-in sample dataset, served only when every
// source fails and the store is empty, so the system degrades to something
// rather than nothing. Never persisted.
func FallbackArticles() []Article {
	return []Article{
		{
			ID:          "1",
			Title:       "레카네맙 후속 항체치료제, 3상 임상서 인지기능 저하 35% 감소",
			Description: "에자이와 바이오젠이 공동 개발한 차세대 항아밀로이드 항체가 18개월간의 3상 임상시험에서 위약 대비 인지기능 저하를 35% 늦추는 결과를 보여 알츠하이머 치료의 새로운 전환점을 마련했습니다.",
			Source:      "Alzheimer's Research Today",
			Category:    "competition",
			ImageURL:    "https://picsum.photos/seed/alz1/600/400",
			URL:         "#",
			PublishedAt: time.Date(2026, 2, 17, 9, 0, 0, 0, time.UTC),
			Importance:  8,
		},
		{
			ID:          "2",
			Title:       "FDA, 새로운 타우 표적 치료제 신속 심사 지정",
			Description: "미국 식품의약국(FDA)이 타우 단백질을 표적으로 하는 신규 알츠하이머 치료제에 대해 신속 심사를 지정했습니다. 해당 약물은 타우 응집을 억제하여 신경세포 손상을 방지하는 새로운 메커니즘을 가지고 있습니다.",
			Source:      "FDA News",
			Category:    "regulation",
			ImageURL:    "https://picsum.photos/seed/alz2/600/400",
			URL:         "#",
			PublishedAt: time.Date(2026, 2, 17, 8, 30, 0, 0, time.UTC),
			Importance:  7,
		},
		{
			ID:          "3",
			Title:       "혈액 검사로 알츠하이머 조기 진단 가능성 열려",
			Description: "스웨덴 연구팀이 혈중 p-tau217 바이오마커를 활용한 간편 혈액 검사법을 개발했습니다. 기존 PET 스캔이나 뇌척수액 검사 없이도 95% 이상의 정확도로 아밀로이드 병리를 예측할 수 있습니다.",
			Source:      "The Lancet Neurology",
			Category:    "research",
			ImageURL:    "https://picsum.photos/seed/alz3/600/400",
			URL:         "#",
			PublishedAt: time.Date(2026, 2, 16, 18, 0, 0, 0, time.UTC),
			Importance:  5,
		},
		{
			ID:          "4",
			Title:       "GLP-1 수용체 작용제, 알츠하이머 위험 감소와 연관성 확인",
			Description: "대규모 코호트 연구에서 당뇨병 치료에 사용되는 GLP-1 수용체 작용제(세마글루타이드 등)를 복용한 환자군에서 알츠하이머 발병 위험이 유의미하게 낮은 것으로 나타나 새로운 치료 표적으로 주목받고 있습니다.",
			Source:      "Nature Medicine",
			Category:    "research",
			ImageURL:    "https://picsum.photos/seed/alz4/600/400",
			URL:         "#",
			PublishedAt: time.Date(2026, 2, 16, 15, 0, 0, 0, time.UTC),
			Importance:  7,
		},
		{
			ID:          "5",
			Title:       "일라이 릴리, 도나네맙 유럽 시판 허가 획득",
			Description: "일라이 릴리의 항아밀로이드 항체 도나네맙(키선라)이 유럽의약품청(EMA) 승인을 받았습니다. 초기 증상 단계 알츠하이머 환자를 대상으로 한 TRAILBLAZER-ALZ 2 시험에서 질병 진행을 최대 36% 늦추는 효과가 확인되었습니다.",
			Source:      "Reuters Health",
			Category:    "competition",
			ImageURL:    "https://picsum.photos/seed/alz5/600/400",
			URL:         "#",
			PublishedAt: time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC),
			Importance:  8,
		},
	}
}
