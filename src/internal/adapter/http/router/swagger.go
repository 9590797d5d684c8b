package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Banking Ledger API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Banking Ledger API",
    "description": "Accounts and fund transfers with atomic, deadlock-safe posting.",
    "version": "1.0.0"
  },
  "security": [{"basicAuth": []}],
  "paths": {
    "/api/v1/accounts": {
      "post": {
        "summary": "Create a new account",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CreateAccountRequest"}}}
        },
        "responses": {
          "201": {"description": "Account created"},
          "400": {"description": "Validation failed"}
        }
      },
      "get": {
        "summary": "List accounts",
        "responses": {"200": {"description": "Accounts"}}
      }
    },
    "/api/v1/accounts/{accountNumber}": {
      "get": {
        "summary": "Get account details",
        "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Account"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/api/v1/accounts/{accountNumber}/balance": {
      "get": {
        "summary": "Get account balance",
        "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Balance"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/api/v1/transfers": {
      "post": {
        "summary": "Execute a fund transfer between accounts",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransferRequest"}}}
        },
        "responses": {
          "201": {"description": "Transfer completed"},
          "400": {"description": "Validation failed"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient balance or account not active"}
        }
      }
    },
    "/api/v1/transfers/deposits": {
      "post": {
        "summary": "Deposit into an account",
        "responses": {"201": {"description": "Deposit completed"}}
      }
    },
    "/api/v1/transfers/withdrawals": {
      "post": {
        "summary": "Withdraw from an account",
        "responses": {"201": {"description": "Withdrawal completed"}}
      }
    },
    "/api/v1/transfers/{transactionId}": {
      "get": {
        "summary": "Get transaction status",
        "parameters": [{"name": "transactionId", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Transaction"},
          "404": {"description": "Transaction not found"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "basicAuth": {"type": "http", "scheme": "basic"}
    },
    "schemas": {
      "CreateAccountRequest": {
        "type": "object",
        "required": ["accountHolderName", "initialBalance", "currency"],
        "properties": {
          "accountHolderName": {"type": "string"},
          "initialBalance": {"type": "string", "example": "1000.00"},
          "currency": {"type": "string", "example": "USD"}
        }
      },
      "TransferRequest": {
        "type": "object",
        "required": ["fromAccountNumber", "toAccountNumber", "amount"],
        "properties": {
          "fromAccountNumber": {"type": "string", "example": "1234-5678-9012"},
          "toAccountNumber": {"type": "string", "example": "2345-6789-0123"},
          "amount": {"type": "string", "example": "250.00"},
          "description": {"type": "string"}
        }
      }
    }
  }
}`
