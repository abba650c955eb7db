// Package paapi Amazon Product Advertising API v5 のクライアントを提供します。
//
// リクエスト署名（AWS Signature Version 4）、SearchItems / GetItems 操作の実行、
// およびレスポンスの正規化を担当します。
package paapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sofvo/catalog-server/internal/catalog"
)

const (
	// Host Amazon.co.jp マーケットプレイスの PA-API エンドポイントホストです。
	Host = "webservices.amazon.co.jp"

	// Region Amazon.co.jp エンドポイントに対応する署名リージョンです。
	Region = "us-west-2"

	// Service 署名スコープに使用するサービス名です。
	Service = "ProductAdvertisingAPI"

	// targetPrefix X-Amz-Target ヘッダーの操作名プレフィックスです。
	targetPrefix = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1."

	// amzDateFormat X-Amz-Date ヘッダーの日時フォーマットです。
	amzDateFormat = "20060102T150405Z"

	algorithm   = "AWS4-HMAC-SHA256"
	terminator  = "aws4_request"
	uriPrefix   = "/paapi5/"
	contentType = "application/json; charset=utf-8"
)

// SignedRequest 署名済みの PA-API リクエスト情報です。
type SignedRequest struct {
	// URL リクエスト送信先の完全な URL です。
	URL string

	// Header Authorization を含む送信ヘッダーです。
	Header http.Header
}

// Signer AWS Signature Version 4 方式で PA-API リクエストに署名します。
type Signer struct {
	// now 現在時刻の取得関数です。テストで固定時刻を注入できるようにしています。
	now func() time.Time
}

// NewSigner 新しい Signer を生成します。
func NewSigner() *Signer {
	return &Signer{
		now: time.Now,
	}
}

// operationPath 操作名から署名対象の URI パスを導出します。
// 操作名のドット区切り最終セグメントを小文字化して "/paapi5/" に連結します。
// (例: "SearchItems" → "/paapi5/searchitems")
func operationPath(operation string) string {
	segments := strings.Split(operation, ".")
	return uriPrefix + strings.ToLower(segments[len(segments)-1])
}

// Sign 指定されたペイロードと操作名に対して署名を行い、
// 送信可能なリクエスト情報を返します。
//
// 署名は呼び出し時点の UTC 時刻に基づいて毎回計算されます。
// 同一のペイロード・操作・認証情報・時刻であれば結果は決定的です。
func (s *Signer) Sign(payload []byte, operation string, creds catalog.Credentials) SignedRequest {
	amzDate := s.now().UTC().Format(amzDateFormat)
	dateStamp := amzDate[:8]

	canonicalURI := operationPath(operation)
	amzTarget := targetPrefix + operation

	headers := map[string]string{
		"content-encoding": "amz-1.0",
		"content-type":     contentType,
		"host":             Host,
		"x-amz-date":       amzDate,
		"x-amz-target":     amzTarget,
	}

	headerNames := make([]string, 0, len(headers))
	for name := range headers {
		headerNames = append(headerNames, name)
	}
	sort.Strings(headerNames)

	var canonicalHeaders strings.Builder
	for _, name := range headerNames {
		canonicalHeaders.WriteString(name)
		canonicalHeaders.WriteString(":")
		canonicalHeaders.WriteString(headers[name])
		canonicalHeaders.WriteString("\n")
	}
	signedHeaders := strings.Join(headerNames, ";")

	payloadHash := hashSHA256(payload)

	canonicalRequest := strings.Join([]string{
		http.MethodPost,
		canonicalURI,
		"", // クエリ文字列は常に空
		canonicalHeaders.String(),
		signedHeaders,
		payloadHash,
	}, "\n")

	credentialScope := strings.Join([]string{dateStamp, Region, Service, terminator}, "/")
	stringToSign := strings.Join([]string{
		algorithm,
		amzDate,
		credentialScope,
		hashSHA256([]byte(canonicalRequest)),
	}, "\n")

	signingKey := deriveSigningKey(creds.SecretKey, dateStamp)
	signature := hex.EncodeToString(hmacSHA256(signingKey, stringToSign))

	authorization := fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		algorithm, creds.AccessKey, credentialScope, signedHeaders, signature)

	header := http.Header{}
	header.Set("Content-Encoding", "amz-1.0")
	header.Set("Content-Type", contentType)
	header.Set("Host", Host)
	header.Set("X-Amz-Date", amzDate)
	header.Set("X-Amz-Target", amzTarget)
	header.Set("Authorization", authorization)

	return SignedRequest{
		URL:    "https://" + Host + canonicalURI,
		Header: header,
	}
}

// deriveSigningKey シークレットキーから段階的に HMAC を適用して署名キーを導出します。
func deriveSigningKey(secretKey, dateStamp string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, Region)
	kService := hmacSHA256(kRegion, Service)
	return hmacSHA256(kService, terminator)
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

func hashSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
