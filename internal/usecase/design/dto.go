package design

type GenerateRequest struct {
	Prompt string `json:"prompts" validate:"required,max=4000"`
}

type ProxyRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

// ProxiedImage is the fetched payload and the upstream Content-Type.
type ProxiedImage struct {
	ContentType string
	Data        []byte
}

type generationPayload struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type generationResult struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type upstreamError struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
