package tutor

import (
	"context"
	"fmt"
	"hash/fnv"
)

const mockTokensUsed = 100

var mockReplies = []string{
	"안녕하세요! %[1]s 학습을 도와드릴게요! 😊\n\n" +
		"'%[2]s' 에 대해 설명드리면:\n\n" +
		"1. 기본적인 인사는 'Hello'나 'Hi'를 사용합니다.\n" +
		"2. 격식을 차린 인사는 'Good morning/afternoon/evening'을 사용해요.\n" +
		"3. 친구들에게는 'Hey'나 'What's up?'도 자주 사용합니다!\n\n" +
		"더 궁금한 점이 있으면 언제든 물어보세요! 💪",
	"좋은 질문이에요! %[1]s 학습에서 이 부분은 매우 중요합니다.\n\n" +
		"'%[2]s' 에 대한 제 답변:\n" +
		"• 자주 연습하는 것이 가장 중요해요\n" +
		"• 원어민의 발음을 많이 듣고 따라하세요\n" +
		"• 실수를 두려워하지 마세요! 실수는 배움의 과정입니다.\n\n" +
		"계속 노력하시면 분명히 실력이 향상될 거예요! 🌟",
	"훌륭한 질문입니다! 💡 (%[1]s)\n\n" +
		"'%[2]s' 의 문법은 다음과 같이 사용해요:\n" +
		"1. 주어 + 동사 + 목적어 순서\n" +
		"2. 시제에 주의하세요\n" +
		"3. 예문: 'I am learning English.'\n\n" +
		"더 많은 예문이 필요하시면 말씀해주세요! 📚",
}

var mockGrammarNotes = []string{
	"문법이 완벽합니다! 👍",
	"Good job! 문장 구조가 정확해요! ✨",
	"훌륭해요! 자연스러운 표현이에요! 🎉",
}

// Mock answers from canned replies. The same message always gets the same answer.
type Mock struct{}

// NewMock creates a mock tutor
func NewMock() *Mock {
	return &Mock{}
}

// Reply always succeeds
func (m *Mock) Reply(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	h := fnv.New32a()
	h.Write([]byte(req.Message))
	sum := h.Sum32()

	reply := fmt.Sprintf(mockReplies[sum%uint32(len(mockReplies))], req.TargetLanguage, req.Message)
	note := mockGrammarNotes[(sum/uint32(len(mockReplies)))%uint32(len(mockGrammarNotes))]

	return Response{
		Success:     true,
		Reply:       reply,
		GrammarNote: &note,
		TokensUsed:  mockTokensUsed,
	}, nil
}
