package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"github.com/jeff-stratofied/reporting-phase2/api"
	"github.com/jeff-stratofied/reporting-phase2/cmd"
)

type lambdaHandler struct {
	apiHandler *api.ApiHandler
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	engine := m.apiHandler.InitializeRouterEngine()
	ginLambda := ginadapter.New(engine)
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	handler := lambdaHandler{apiHandler: deps.ApiHandler}
	lambda.Start(handler.Handler)
}
