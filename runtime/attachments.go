package runtime

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fluux-io/fluux-agent/stanzaengine"
	"github.com/fluux-io/fluux-agent/workspace"
)

// maxAttachmentBytes bounds a single downloaded attachment so a hostile or
// misbehaving OOB URL cannot exhaust disk space.
const maxAttachmentBytes = 25 << 20

// downloadAttachments fetches each OOB attachment's URL into the peer's
// files/ directory. A failed download does not abort the message; it is
// recorded with its original filename and no size, and a warning is logged.
func (a *Agent) downloadAttachments(ctx context.Context, p *workspace.Peer, atts []stanzaengine.Attachment) []workspace.AttachmentRef {
	if len(atts) == 0 {
		return nil
	}
	refs := make([]workspace.AttachmentRef, 0, len(atts))
	for _, att := range atts {
		ref, err := a.downloadAttachment(ctx, p, att)
		if err != nil {
			a.log.Warn().Err(err).Str("url", att.URL).Msg("attachment download failed")
			ref = workspace.AttachmentRef{Filename: filenameFromURL(att.URL)}
		}
		refs = append(refs, ref)
	}
	return refs
}

func (a *Agent) downloadAttachment(ctx context.Context, p *workspace.Peer, att stanzaengine.Attachment) (workspace.AttachmentRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, nil)
	if err != nil {
		return workspace.AttachmentRef{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return workspace.AttachmentRef{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return workspace.AttachmentRef{}, fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	base := filenameFromURL(att.URL)
	dest := filepath.Join(p.FilesDir(), uuid.NewString()+"-"+base)

	f, err := os.Create(dest)
	if err != nil {
		return workspace.AttachmentRef{}, fmt.Errorf("create %s: %w", dest, err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(resp.Body, maxAttachmentBytes+1))
	if err != nil {
		return workspace.AttachmentRef{}, fmt.Errorf("write %s: %w", dest, err)
	}
	if n > maxAttachmentBytes {
		return workspace.AttachmentRef{}, fmt.Errorf("attachment exceeds %d bytes", maxAttachmentBytes)
	}

	mimeType := resp.Header.Get("Content-Type")
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}

	return workspace.AttachmentRef{Filename: base, MimeType: mimeType, Size: n}, nil
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "attachment"
	}
	base := filepath.Base(u.Path)
	if base == "" || base == "." || base == "/" {
		return "attachment"
	}
	return base
}
