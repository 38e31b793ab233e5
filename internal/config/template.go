package config

// envTemplate is used when config/<env>.yaml does not exist.
// Keys mirror the variable names the guidebook deployment has always used.
const envTemplate = `
http:
  port: ${HTTP_PORT:-8080}

search:
  endpoint: "${SEARCH_ENDPOINT}"
  api_key: "${SEARCH_API_KEY}"
  index: "${INDEX_NAME}"
  highlight: ${SEARCH_HIGHLIGHT:-false}
  semantic: ${SEARCH_SEMANTIC:-false}
  semantic_configuration: "${SEARCH_SEMANTIC_CONFIGURATION}"

chat:
  provider: "${CHAT_PROVIDER:-azure}"
  endpoint: "${AOAI_ENDPOINT}"
  api_key: "${AOAI_KEY}"
  api_version: "${AOAI_VERSION}"
  deployment: "${AOAI_DEPLOYMENT}"

answer:
  context_budget: ${CONTEXT_BUDGET:-1000}
  language: "${ANSWER_LANGUAGE:-English}"

logging:
  level: "${LOG_LEVEL}"
  file: "${LOG_FILE:-wikibot.log}"
`
