package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/skillet"
)

// maxImageCandidates bounds how many candidate URLs are offered to the
// vision model per call.
const maxImageCandidates = 12

// Ensure ImageSelector implements skillet.ImageSelector.
var _ skillet.ImageSelector = (*ImageSelector)(nil)

// ImageSelector picks the best finished-dish photo from candidate URLs
// using a vision-capable model. It degrades gracefully: empty input, an
// unrecognizable response, or a collaborator error all yield "" and a nil
// error, never a failure.
type ImageSelector struct {
	vision skillet.VisionCompleter
}

// NewImageSelector creates a new ImageSelector.
func NewImageSelector(vision skillet.VisionCompleter) *ImageSelector {
	return &ImageSelector{vision: vision}
}

// SelectMain returns the candidate URL the model picked, or "" when no
// candidate qualifies.
func (s *ImageSelector) SelectMain(ctx context.Context, imageURLs []string) (string, error) {
	if len(imageURLs) == 0 {
		return "", nil
	}
	candidates := imageURLs
	if len(candidates) > maxImageCandidates {
		candidates = candidates[:maxImageCandidates]
	}

	resp, err := s.vision.CompleteWithImageURLs(ctx, buildImagePrompt(candidates), candidates)
	if err != nil {
		return "", nil
	}

	answer := strings.TrimSpace(resp)
	if answer == "" || strings.EqualFold(answer, "none") {
		return "", nil
	}

	// The response must be one of the inputs: exact match first, then
	// substring either way to tolerate models echoing extra text.
	for _, u := range candidates {
		if answer == u {
			return u, nil
		}
	}
	for _, u := range candidates {
		if strings.Contains(answer, u) || strings.Contains(u, answer) {
			return u, nil
		}
	}

	return "", nil
}
