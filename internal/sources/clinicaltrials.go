package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"alznews/internal/cache"
	"alznews/internal/news"
	"alznews/internal/retry"
)

const ctCacheKey = "clinicaltrials-articles"

// ClinicalTrialsSource surfaces recently updated Alzheimer studies from the
// ClinicalTrials.gov v2 registry as article records.
type ClinicalTrialsSource struct {
	cache  *cache.Cache
	ttl    time.Duration
	client *http.Client
	retry  retry.Config
	log    *slog.Logger
}

func NewClinicalTrialsSource(c *cache.Cache, ttl, timeout time.Duration, retryCfg retry.Config, log *slog.Logger) *ClinicalTrialsSource {
	return &ClinicalTrialsSource{
		cache:  c,
		ttl:    ttl,
		client: &http.Client{Timeout: timeout},
		retry:  retryCfg,
		log:    log,
	}
}

func (s *ClinicalTrialsSource) Name() string { return "clinicaltrials" }

type ctStudy struct {
	ProtocolSection struct {
		IdentificationModule struct {
			NCTID      string `json:"nctId"`
			BriefTitle string `json:"briefTitle"`
		} `json:"identificationModule"`
		StatusModule struct {
			LastUpdateSubmitDate string `json:"lastUpdateSubmitDate"`
			StatusVerifiedDate   string `json:"statusVerifiedDate"`
		} `json:"statusModule"`
		DescriptionModule struct {
			BriefSummary string `json:"briefSummary"`
		} `json:"descriptionModule"`
		SponsorCollaboratorsModule struct {
			LeadSponsor struct {
				Name string `json:"name"`
			} `json:"leadSponsor"`
		} `json:"sponsorCollaboratorsModule"`
	} `json:"protocolSection"`
}

type ctResponse struct {
	Studies []ctStudy `json:"studies"`
}

func (s *ClinicalTrialsSource) Fetch(ctx context.Context) ([]news.RawArticle, error) {
	if cached, ok := s.cache.Get(ctCacheKey); ok {
		return cached.([]news.RawArticle), nil
	}

	endpoint := url.URL{Scheme: "https", Host: "clinicaltrials.gov", Path: "/api/v2/studies"}
	q := endpoint.Query()
	q.Set("query.cond", "Alzheimer Disease")
	q.Set("sort", "LastUpdatePostDate:desc")
	q.Set("pageSize", "20")
	q.Set("fields", "NCTId,BriefTitle,BriefSummary,LastUpdateSubmitDate,StatusVerifiedDate,LeadSponsorName")
	endpoint.RawQuery = q.Encode()

	var data ctResponse
	err := retry.WithRetry(ctx, s.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("clinicaltrials: HTTP %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&data)
	})
	if err != nil {
		return nil, err
	}

	articles := make([]news.RawArticle, 0, len(data.Studies))
	for _, study := range data.Studies {
		id := study.ProtocolSection.IdentificationModule
		if id.NCTID == "" || id.BriefTitle == "" {
			continue
		}

		status := study.ProtocolSection.StatusModule
		source := study.ProtocolSection.SponsorCollaboratorsModule.LeadSponsor.Name
		if source == "" {
			source = "ClinicalTrials.gov"
		}

		articles = append(articles, news.RawArticle{
			Title:       id.BriefTitle,
			Description: truncateRunes(study.ProtocolSection.DescriptionModule.BriefSummary, 500),
			URL:         "https://clinicaltrials.gov/study/" + id.NCTID,
			Source:      source,
			PublishedAt: parseCTDate(status.LastUpdateSubmitDate, status.StatusVerifiedDate),
			Language:    "en",
		})
	}

	s.cache.Set(ctCacheKey, articles, s.ttl)
	return articles, nil
}

// parseCTDate accepts the registry's date-only and year-month formats.
func parseCTDate(candidates ...string) time.Time {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, layout := range []string{"2006-01-02", "2006-01"} {
			if t, err := time.Parse(layout, c); err == nil {
				return t
			}
		}
	}
	return time.Now()
}
