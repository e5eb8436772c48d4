package openai

const splitWordsPrompt = `You're an expert at splitting glued words. Keep numbers as they are.
If there is no glued word in the text, return the text as is.

Here's some examples:
- ProductDimensions becomes product dimension
- Manufacturerrecommendedage becomes manufacturer recommended age

Rewrite the text you are given. Respond with the rewritten text only,
without any explanation.`
