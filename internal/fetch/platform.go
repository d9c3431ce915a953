package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose postings get board-specific selectors
type Platform string

// Known platforms
const (
	PlatformGreenhouse  Platform = "greenhouse"
	PlatformLever       Platform = "lever"
	PlatformWorkday     Platform = "workday"
	PlatformInternshala Platform = "internshala"
	PlatformNaukri      Platform = "naukri"
	PlatformUnknown     Platform = "unknown"
)

// boardProfile describes where a board keeps the posting body and what to strip around it
type boardProfile struct {
	hosts   []string
	content []string
	noise   []string
}

var boards = map[Platform]boardProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	PlatformInternshala: {
		hosts:   []string{"internshala.com"},
		content: []string{".internship_details", ".detail_view", "#details_container"},
		noise:   []string{".apply_now_container", ".similar_internships_container", ".footer_container"},
	},
	PlatformNaukri: {
		hosts:   []string{"naukri.com"},
		content: []string{"[class*='job-desc']", ".dang-inner-html", ".jd-container"},
		noise:   []string{"[class*='apply-button']", "[class*='similar-jobs']"},
	},
}

// commonNoise is stripped from every posting regardless of board
var commonNoise = []string{
	"form", ".application-form", ".apply-button-container",
	".eeo-statement", ".legal-disclosure",
	".social-share", ".share-buttons",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for platform, board := range boards {
		for _, h := range board.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns the posting-body selectors for a board,
// falling back to the generic job posting selectors
func PlatformContentSelectors(platform Platform) []string {
	board, ok := boards[platform]
	if !ok {
		return JobPostingSelectors()
	}
	return append(append([]string{}, board.content...), JobPostingSelectors()...)
}

// PlatformNoiseSelectors returns what to remove from a board's page before extracting text
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string{}, commonNoise...)
	return append(noise, boards[platform].noise...)
}
