// Command analysisclient submits a recorded answer to a running
// analysis service and prints the returned report. Development tool.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "service base URL")
	audio := flag.String("audio", "", "path to the audio file (required)")
	video := flag.String("video", "", "path to an optional video file")
	question := flag.String("question", "Tell me about yourself.", "interview question")
	domain := flag.String("domain", "", "domain id for vocabulary biasing")
	language := flag.String("language", "", "BCP-47 language code override")
	timeout := flag.Duration("timeout", 10*time.Minute, "request timeout")
	flag.Parse()

	if *audio == "" {
		fmt.Fprintln(os.Stderr, "-audio is required")
		flag.Usage()
		os.Exit(2)
	}

	body, contentType, err := buildForm(*audio, *video, *question, *domain, *language)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Post(*addr+"/v1/analyses", contentType, body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "request failed:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read response:", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "status %d: %s\n", resp.StatusCode, raw)
		os.Exit(1)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		os.Stdout.Write(raw)
		return
	}
	pretty.WriteTo(os.Stdout)
	fmt.Println()
}

func buildForm(audio, video, question, domain, language string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := attachFile(w, "audio", audio); err != nil {
		return nil, "", err
	}
	if video != "" {
		if err := attachFile(w, "video", video); err != nil {
			return nil, "", err
		}
	}
	fields := map[string]string{
		"question":  question,
		"domain_id": domain,
		"language":  language,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
