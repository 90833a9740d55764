package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog/log"
)

// TranscriptSource turns a YouTube video into summarizable text.
type TranscriptSource struct {
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

func NewTranscriptSource() *TranscriptSource {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &TranscriptSource{
		httpClient:    httpClient,
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{HTTPClient: httpClient},
	}
}

// VideoID accepts a full YouTube URL or a bare video ID.
func VideoID(urlOrID string) (string, error) {
	id, err := yt.ExtractVideoID(strings.TrimSpace(urlOrID))
	if err != nil {
		return "", fmt.Errorf("not a YouTube video reference: %w", err)
	}
	return id, nil
}

// Transcript fetches the captions of a video, preferring English tracks.
func (s *TranscriptSource) Transcript(ctx context.Context, urlOrID string) (string, error) {
	videoID, err := VideoID(urlOrID)
	if err != nil {
		return "", err
	}

	transcript, err := s.transcriptAPI.GetTranscript(videoID, []string{"en", "en-US", "en-GB"})
	if err != nil {
		// Fallback: request any available language
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
	}
	if err != nil {
		log.Debug().Err(err).Str("video_id", videoID).Msg("transcript API failed, trying caption tracks")
		text, trackErr := s.transcriptFromCaptionTracks(ctx, videoID)
		if trackErr != nil {
			return "", fmt.Errorf("no subtitles available via transcript API (%v) and caption track fallback failed (%v)", err, trackErr)
		}
		return text, nil
	}

	var fullText strings.Builder
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		fullText.WriteString(text)
		fullText.WriteString(" ")
	}

	cleaned := strings.TrimSpace(fullText.String())
	if cleaned == "" {
		return "", fmt.Errorf("subtitle text resolved to empty content")
	}
	return cleaned, nil
}

func (s *TranscriptSource) transcriptFromCaptionTracks(ctx context.Context, videoID string) (string, error) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video metadata: %w", err)
	}
	if len(video.CaptionTracks) == 0 {
		return "", fmt.Errorf("no captions available for this video")
	}

	track := video.CaptionTracks[0]
	for _, t := range video.CaptionTracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			track = t
			break
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read captions: %w", err)
	}

	transcript, err := parseCaptionsXML(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse captions XML: %w", err)
	}
	return transcript, nil
}

func parseCaptionsXML(data []byte) (string, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", err
	}

	var parts []string
	for _, t := range tt.Texts {
		text := html.UnescapeString(t.Text)
		text = strings.TrimSpace(text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("captions XML empty")
	}

	return strings.Join(parts, " "), nil
}
