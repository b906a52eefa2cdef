// Package google provides a Google Cloud Video Intelligence annotator.
package google

import (
	"context"
	"fmt"

	videointelligence "cloud.google.com/go/videointelligence/apiv1"
	videopb "cloud.google.com/go/videointelligence/apiv1/videointelligencepb"

	"interview-analysis-service/internal/service/video"
)

// Client implements video.Annotator using the Video Intelligence API.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type Client struct {
	client *videointelligence.Client
}

// New creates a Video Intelligence annotator.
func New(ctx context.Context) (*Client, error) {
	c, err := videointelligence.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("video intelligence client: %w", err)
	}
	return &Client{client: c}, nil
}

// Annotate runs a long-running person and face detection job against a
// staged URI and maps the vendor response into internal annotation types
// at the boundary.
func (c *Client) Annotate(ctx context.Context, stagedURI string) (video.Annotations, error) {
	op, err := c.client.AnnotateVideo(ctx, &videopb.AnnotateVideoRequest{
		InputUri: stagedURI,
		Features: []videopb.Feature{
			videopb.Feature_PERSON_DETECTION,
			videopb.Feature_FACE_DETECTION,
		},
		VideoContext: &videopb.VideoContext{
			PersonDetectionConfig: &videopb.PersonDetectionConfig{
				IncludeBoundingBoxes: true,
				IncludeAttributes:    true,
			},
			FaceDetectionConfig: &videopb.FaceDetectionConfig{
				IncludeBoundingBoxes: true,
				IncludeAttributes:    true,
			},
		},
	})
	if err != nil {
		return video.Annotations{}, fmt.Errorf("annotate video: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return video.Annotations{}, fmt.Errorf("annotate video: %w", err)
	}

	var ann video.Annotations
	for _, result := range resp.GetAnnotationResults() {
		for _, person := range result.GetPersonDetectionAnnotations() {
			for _, t := range person.GetTracks() {
				ann.PersonTracks = append(ann.PersonTracks, video.Track{
					Confidence: float64(t.GetConfidence()),
				})
			}
		}
		for _, face := range result.GetFaceDetectionAnnotations() {
			for _, t := range face.GetTracks() {
				ann.FaceTracks = append(ann.FaceTracks, video.Track{
					Confidence: float64(t.GetConfidence()),
				})
			}
		}
	}
	return ann, nil
}

// Close releases the underlying client connection.
func (c *Client) Close() error { return c.client.Close() }
