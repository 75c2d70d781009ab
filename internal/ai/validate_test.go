package ai

import "testing"

func TestBuildValidationPrompt(t *testing.T) {
	got := BuildValidationPrompt("original consult text", "confirmed summary")
	want := "#申請會診單：\noriginal consult text\n\n#護理師確認結果：\nconfirmed summary"
	if got != want {
		t.Errorf("prompt mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestBuildValidationPromptUnwrapsAnswerTags(t *testing.T) {
	got := BuildValidationPrompt("src", "<thinking>reasoning</thinking><answer>final text</answer>")
	want := "#申請會診單：\nsrc\n\n#護理師確認結果：\nfinal text"
	if got != want {
		t.Errorf("prompt mismatch:\ngot  %q\nwant %q", got, want)
	}
}
