package post

import (
	"PostGenius/internal/config"
	"PostGenius/internal/service/image"
	"bytes"
	"context"
	"errors"
	goimage "image"
	"image/png"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

type fakeClient struct {
	calls    int
	text     string
	imageURL string
	reply    string
	null     bool
	err      error
}

func (f *fakeClient) SendRequest(_ context.Context, text string, imageURL string) (*string, error) {
	f.calls++
	f.text = text
	f.imageURL = imageURL
	if f.err != nil || f.null {
		return nil, f.err
	}
	reply := f.reply
	return &reply, nil
}

func newTestGenerator(t *testing.T, client *fakeClient, images ImageProcessor) *Generator {
	t.Helper()
	return NewGenerator(client, images, zaptest.NewLogger(t).Sugar())
}

func TestGenerateValidation(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"empty image", Request{Image: "", Tone: "pro"}, ErrMissingInput},
		{"empty tone", Request{Image: "data:...", Tone: ""}, ErrMissingInput},
		{"both empty", Request{}, ErrMissingInput},
		{"missing image wins over bad tone", Request{Tone: "humour léger"}, ErrMissingInput},
		{"unknown tone", Request{Image: "data:...", Tone: "humour léger"}, ErrInvalidTone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeClient{reply: "unused"}
			g := newTestGenerator(t, client, nil)
			_, err := g.Generate(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if client.calls != 0 {
				t.Fatalf("provider called %d times on invalid input", client.calls)
			}
		})
	}
}

func TestGenerateReturnsProviderTextVerbatim(t *testing.T) {
	client := &fakeClient{reply: "Hello #test"}
	g := newTestGenerator(t, client, nil)

	res, err := g.Generate(context.Background(), Request{Image: "data:...", Tone: "pro"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Post == nil || *res.Post != "Hello #test" {
		t.Fatalf("post = %v", res.Post)
	}
	if client.calls != 1 {
		t.Fatalf("calls = %d, want 1", client.calls)
	}
	if client.imageURL != "data:..." {
		t.Fatalf("image = %q, want pass-through", client.imageURL)
	}
	if !strings.Contains(client.text, ToneProfessional.Directive()) {
		t.Fatal("prompt sent to provider lacks tone directive")
	}
}

func TestGenerateWrapsUpstreamError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	client := &fakeClient{err: cause}
	g := newTestGenerator(t, client, nil)

	_, err := g.Generate(context.Background(), Request{Image: "data:...", Tone: "humour"})
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %T %v, want *UpstreamError", err, err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("upstream error must unwrap to its cause")
	}
}

func TestGenerateNormalizesImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, goimage.NewRGBA(goimage.Rect(0, 0, 300, 30))); err != nil {
		t.Fatal(err)
	}
	in := image.FormatDataURL("image/png", buf.Bytes())

	client := &fakeClient{reply: "ok"}
	cfg := config.Defaults().Image
	cfg.MaxWidth = 100
	g := newTestGenerator(t, client, image.NewProcessor(cfg))

	if _, err := g.Generate(context.Background(), Request{Image: in, Tone: "storytelling"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(client.imageURL, "data:image/jpeg;base64,") {
		t.Fatalf("image sent = %.40q, want jpeg data url", client.imageURL)
	}
}

func TestGeneratePassesThroughUndecodableImage(t *testing.T) {
	client := &fakeClient{reply: "ok"}
	g := newTestGenerator(t, client, image.NewProcessor(config.Defaults().Image))

	in := "data:image/png;base64,bm90IGFuIGltYWdl"
	if _, err := g.Generate(context.Background(), Request{Image: in, Tone: "pro"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if client.imageURL != in {
		t.Fatalf("image = %q, want unchanged", client.imageURL)
	}
}

func TestGeneratePassesThroughOversizedHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, goimage.NewGray(goimage.Rect(0, 0, 40, 40))); err != nil {
		t.Fatal(err)
	}
	in := image.FormatDataURL("image/png", buf.Bytes())

	client := &fakeClient{reply: "ok"}
	cfg := config.Defaults().Image
	cfg.MaxPixels = 100
	g := newTestGenerator(t, client, image.NewProcessor(cfg))

	if _, err := g.Generate(context.Background(), Request{Image: in, Tone: "pro"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if client.calls != 1 || client.imageURL != in {
		t.Fatalf("calls = %d, image changed = %v", client.calls, client.imageURL != in)
	}
}

func TestGenerateKeepsNullPost(t *testing.T) {
	client := &fakeClient{null: true}
	g := newTestGenerator(t, client, nil)

	res, err := g.Generate(context.Background(), Request{Image: "data:...", Tone: "pro"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Post != nil {
		t.Fatalf("post = %q, want nil", *res.Post)
	}
}
