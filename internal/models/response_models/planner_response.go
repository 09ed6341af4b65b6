package response_models

type ShareResponse struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	QRCode   string `json:"qrCode,omitempty"` // base64 PNG
}

type TextExportResponse struct {
	Text string `json:"text"`
}
