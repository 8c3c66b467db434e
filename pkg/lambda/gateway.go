package lambda

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

// FromAPIGateway converts an API Gateway proxy event into a Request
func FromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = decoded
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     flatten(event.Headers, event.MultiValueHeaders),
		QueryParams: flatten(event.QueryStringParameters, event.MultiValueQueryStringParameters),
		Body:        body,
		PathParams:  event.PathParameters,
		RequestID:   event.RequestContext.RequestID,
	}, nil
}

// ToAPIGateway converts a Response into an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            string(resp.Body),
		IsBase64Encoded: false,
	}
}

// Adapt wraps a HandlerFunc into an API Gateway proxy handler
func Adapt(handler HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromAPIGateway(event)
		if err != nil {
			return events.APIGatewayProxyResponse{
				StatusCode: 400,
				Headers: map[string]string{
					"Content-Type":                "application/json",
					"Access-Control-Allow-Origin": "*",
				},
				Body: `{"error":"Некорректное тело запроса"}`,
			}, nil
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return ToAPIGateway(resp), nil
	}
}

// Start runs the handler as an AWS Lambda function
func Start(handler HandlerFunc) {
	awslambda.Start(Adapt(handler))
}

// flatten merges single-value and multi-value maps. Single values win.
func flatten(single map[string]string, multi map[string][]string) map[string]string {
	out := make(map[string]string, len(single)+len(multi))
	for k, v := range multi {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	for k, v := range single {
		out[k] = v
	}
	return out
}
