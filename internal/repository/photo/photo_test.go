package photo

import (
	"context"
	"errors"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockPresigner struct {
	fn func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

func (m *mockPresigner) PresignGetObject(
	ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions),
) (*v4.PresignedHTTPRequest, error) {
	return m.fn(ctx, params, optFns...)
}

func TestS3Resolver_URL(t *testing.T) {
	var (
		gotBucket, gotKey string
		gotTTL            time.Duration
	)
	p := &mockPresigner{fn: func(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket, gotKey = *in.Bucket, *in.Key
		var opts s3.PresignOptions
		for _, fn := range optFns {
			fn(&opts)
		}
		gotTTL = opts.Expires
		return &v4.PresignedHTTPRequest{URL: "https://signed/" + *in.Key}, nil
	}}

	r := NewS3Resolver(p, "pets", 0)
	u, err := r.URL(context.Background(), "listings/l1/a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != "https://signed/listings/l1/a.jpg" {
		t.Errorf("url = %q", u)
	}
	if gotBucket != "pets" || gotKey != "listings/l1/a.jpg" {
		t.Errorf("bucket=%q key=%q", gotBucket, gotKey)
	}
	if gotTTL != DefaultPresignTTL {
		t.Errorf("ttl = %v, want %v", gotTTL, DefaultPresignTTL)
	}
}

func TestS3Resolver_Error(t *testing.T) {
	p := &mockPresigner{fn: func(context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("no credentials")
	}}
	if _, err := NewS3Resolver(p, "pets", time.Minute).URL(context.Background(), "k"); err == nil {
		t.Fatal("expected error")
	}
}

func TestResolvers_PassThroughAbsoluteURLs(t *testing.T) {
	p := &mockPresigner{fn: func(context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		t.Fatal("presigner must not be called")
		return nil, nil
	}}
	const abs = "https://cdn.example.com/x.jpg"

	if u, _ := NewS3Resolver(p, "pets", time.Minute).URL(context.Background(), abs); u != abs {
		t.Errorf("s3: %q", u)
	}
	if u, _ := NewPublicResolver("https://other").URL(context.Background(), abs); u != abs {
		t.Errorf("public: %q", u)
	}
}

func TestPublicResolver_URL(t *testing.T) {
	r := NewPublicResolver("https://cdn.example.com/pets/")
	u, err := r.URL(context.Background(), "/listings/l1/a.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != "https://cdn.example.com/pets/listings/l1/a.jpg" {
		t.Errorf("url = %q", u)
	}
}

func TestNew_PublicBaseURL(t *testing.T) {
	r, err := New(context.Background(), Config{PublicBaseURL: "https://cdn", Bucket: "ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.(*PublicResolver); !ok {
		t.Errorf("expected *PublicResolver, got %T", r)
	}
}

func TestNew_RequiresBucketOrBase(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error")
	}
}
